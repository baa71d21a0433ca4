package cache

import (
	"encoding/json"
	"time"
)

// Record is the envelope every durable cache entry is stored in. ExpiresAt
// is a Unix-millisecond instant; a record is valid only while now is strictly
// before it. Records are replaced wholesale on refresh, never mutated.
type Record struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt int64           `json:"expiresAt"`
}

func (r Record) Expired(now time.Time) bool {
	return now.UnixMilli() >= r.ExpiresAt
}

// NewRecord wraps an already-serialized value with an expiry instant.
func NewRecord(value json.RawMessage, expiresAt time.Time) Record {
	return Record{Value: value, ExpiresAt: expiresAt.UnixMilli()}
}

// ParseRecord decodes a stored value back into a Record. Fail-open: anything
// that is not a JSON object carrying a numeric expiresAt reports ok=false and
// is treated by callers as cache-absent.
func ParseRecord(raw string) (Record, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return Record{}, false
	}
	expRaw, ok := probe["expiresAt"]
	if !ok {
		return Record{}, false
	}
	var exp int64
	if err := json.Unmarshal(expRaw, &exp); err != nil {
		return Record{}, false
	}
	return Record{Value: probe["value"], ExpiresAt: exp}, true
}
