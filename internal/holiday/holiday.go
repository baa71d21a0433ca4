package holiday

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Info describes one public holiday as the upstream provider reports it.
type Info struct {
	DateName string `json:"dateName"`
	Date     string `json:"date"`
}

// Pair is one wire/storage entry: a [dateKey, info] tuple where dateKey is
// the compact YYYYMMDD form. Month payloads travel and persist as pair
// arrays so they stay plain JSON, and are turned into maps for lookups.
type Pair struct {
	DateKey string
	Info    Info
}

func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.DateKey, p.Info})
}

func (p *Pair) UnmarshalJSON(data []byte) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if tuple[0] == nil || tuple[1] == nil {
		return errors.New("holiday: short pair")
	}
	if err := json.Unmarshal(tuple[0], &p.DateKey); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &p.Info)
}

func toMap(pairs []Pair) map[string]Info {
	m := make(map[string]Info, len(pairs))
	for _, p := range pairs {
		m[p.DateKey] = p.Info
	}
	return m
}

// DateKey composes the compact key for a calendar date.
func DateKey(year, month, day int) string {
	return fmt.Sprintf("%04d%02d%02d", year, month, day)
}

// IsHoliday looks up a day in a month map previously returned by
// Cache.Holidays. month0 is zero-based, matching the calendar grid.
func IsHoliday(year, month0, day int, holidays map[string]Info) (Info, bool) {
	info, ok := holidays[DateKey(year, month0+1, day)]
	return info, ok
}
