package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marumo/koyomi/internal/cache"
	"github.com/marumo/koyomi/internal/holiday"
	"github.com/marumo/koyomi/internal/imagecache"
)

// Handlers exposes the cache engines to the calendar UI. Every endpoint
// mirrors the engine contracts: failures surface as empty results, not 5xx.
type Handlers struct {
	Images   *imagecache.Cache
	Holidays *holiday.Cache
	Sweeper  *cache.Sweeper
}

func (h *Handlers) Register(e *echo.Echo) {
	e.GET("/healthz", h.health)
	e.GET("/readyz", h.health)
	e.GET("/api/images/url", h.signedURL)
	e.POST("/api/images/urls", h.signedURLBatch)
	e.GET("/api/holidays", h.holidays)
	e.POST("/api/cache/sweep", h.sweep)
	e.DELETE("/api/cache/images", h.clearImages)
}

func (h *Handlers) health(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *Handlers) signedURL(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "path is required"})
	}
	bucket := c.QueryParam("bucket")
	ttl := time.Duration(0)
	if raw := c.QueryParam("ttl"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ttl must be a positive integer"})
		}
		ttl = time.Duration(secs) * time.Second
	}

	url, ok := h.Images.GetFrom(c.Request().Context(), bucket, path, ttl)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "image unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

type batchRequest struct {
	Paths  []string `json:"paths"`
	Bucket string   `json:"bucket"`
}

func (h *Handlers) signedURLBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	urls := h.Images.GetBatchFrom(c.Request().Context(), req.Bucket, req.Paths)
	return c.JSON(http.StatusOK, echo.Map{"urls": urls})
}

func (h *Handlers) holidays(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year is required"})
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be 1-12"})
	}
	holidays := h.Holidays.Holidays(c.Request().Context(), year, month)
	return c.JSON(http.StatusOK, echo.Map{"holidays": holidays})
}

func (h *Handlers) sweep(c echo.Context) error {
	removed := h.Sweeper.SweepExpired(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

func (h *Handlers) clearImages(c echo.Context) error {
	h.Images.Clear(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
