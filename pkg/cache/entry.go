package cache

import (
	"encoding/json"
	"time"
)

// entry is the stored form of a cached value.
type entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newEntry(data []byte, ttl time.Duration, now time.Time) entry {
	e := entry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

// expired reports whether e has a deadline before now.
func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

func encodeEntry(e entry) ([]byte, error) {
	return json.Marshal(e)
}

func decodeEntry(b []byte) (entry, error) {
	var e entry
	err := json.Unmarshal(b, &e)
	return e, err
}
