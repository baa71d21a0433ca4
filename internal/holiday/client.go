package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider fetches one month of holidays from the upstream proxy.
type Provider interface {
	FetchMonth(ctx context.Context, year, month int) ([]Pair, error)
}

// Client talks to the holiday proxy endpoint.
type Client struct {
	rest *resty.Client
}

func NewClient(baseURL string) *Client {
	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10 * time.Second)
	return &Client{rest: rest}
}

type monthResponse struct {
	Holidays json.RawMessage `json:"holidays"`
	Error    string          `json:"error"`
}

func (c *Client) FetchMonth(ctx context.Context, year, month int) ([]Pair, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("year", strconv.Itoa(year)).
		SetQueryParam("month", strconv.Itoa(month)).
		Get("/api/holidays")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("holiday: proxy returned %s", resp.Status())
	}

	var body monthResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, fmt.Errorf("holiday: proxy error: %s", body.Error)
	}
	if body.Holidays == nil {
		return nil, fmt.Errorf("holiday: payload missing holidays field")
	}
	var pairs []Pair
	if err := json.Unmarshal(body.Holidays, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}
