package civil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Time is a wall-clock time of day with second precision.
type Time struct {
	Hour   int
	Minute int
	Second int
}

// TimeOf returns the clock time of t.
func TimeOf(t time.Time) Time {
	return Time{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTime accepts "HH:MM" and "HH:MM:SS".
func ParseTime(s string) (Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOf(t), nil
		}
	}
	return Time{}, fmt.Errorf("time must be in HH:MM[:SS] format: %q", s)
}

// TimeFromMicroseconds converts microseconds since midnight.
func TimeFromMicroseconds(us int64) Time {
	secs := us / 1_000_000
	return Time{Hour: int(secs / 3600), Minute: int(secs % 3600 / 60), Second: int(secs % 60)}
}

func (t Time) Microseconds() int64 {
	return (int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second)) * 1_000_000
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("time cannot be null")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
