package logtypes

import (
	"strconv"
	"time"
)

const (
	layoutSeconds = "2006-01-02T15:04:05"
	layoutMicros  = "2006-01-02T15:04:05.000000"
)

// Timestamp is a UTC instant rendered with microsecond precision and a
// literal Z suffix. The fraction is dropped when it is zero.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to microseconds and converts it to UTC
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// String returns the wire form of the timestamp
func (t Timestamp) String() string {
	u := t.Time.UTC()
	if u.Nanosecond()/int(time.Microsecond) == 0 {
		return u.Format(layoutSeconds) + "Z"
	}
	return u.Format(layoutMicros) + "Z"
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	if len(s) > 0 && s[len(s)-1] == 'Z' {
		s = s[:len(s)-1]
	}
	layout := layoutSeconds
	if len(s) > len(layoutSeconds) {
		layout = layoutMicros
	}
	parsed, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
