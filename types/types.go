package types

import (
	"fmt"
	"time"

	"github.com/goccy/datefmt/dateutil"
	"github.com/goccy/go-json"
)

// Config is the engine configuration loaded from YAML, JSON or flags.
type Config struct {
	// Location is an IANA time zone name. Empty means the host's local zone.
	Location          string `yaml:"location" json:"location" validate:"omitempty,location"`
	DefaultPattern    string `yaml:"defaultPattern" json:"defaultPattern"`
	LegacyOffsetBound bool   `yaml:"legacyOffsetBound" json:"legacyOffsetBound"`
	// FixedNow pins the clock to an RFC 3339 time.
	FixedNow string `yaml:"fixedNow" json:"fixedNow" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func NewConfig() *Config {
	return &Config{DefaultPattern: dateutil.DefaultPattern}
}

func (c *Config) LoadLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %s: %w", c.Location, err)
	}
	return loc, nil
}

func (c *Config) Clock() (dateutil.Clock, error) {
	if c.FixedNow == "" {
		return dateutil.SystemClock{}, nil
	}
	t, err := time.Parse(time.RFC3339, c.FixedNow)
	if err != nil {
		return nil, fmt.Errorf("invalid fixedNow %s: %w", c.FixedNow, err)
	}
	return dateutil.FixedClock(t), nil
}

// DateTime is a timestamp-like request value: a JSON string to be parsed
// or a JSON number of milliseconds since the Unix epoch.
type DateTime struct {
	Text   *string
	Millis *int64
}

func NewTextDateTime(s string) *DateTime {
	return &DateTime{Text: &s}
}

func NewMillisDateTime(ms int64) *DateTime {
	return &DateTime{Millis: &ms}
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		d.Text = &text
		return nil
	}
	var millis int64
	if err := json.Unmarshal(b, &millis); err != nil {
		return fmt.Errorf("datetime must be a string or epoch milliseconds: %s", string(b))
	}
	d.Millis = &millis
	return nil
}

func (d *DateTime) MarshalJSON() ([]byte, error) {
	switch {
	case d.Text != nil:
		return json.Marshal(*d.Text)
	case d.Millis != nil:
		return json.Marshal(*d.Millis)
	}
	return []byte("null"), nil
}

func (d *DateTime) Value() dateutil.Value {
	switch {
	case d == nil:
		return dateutil.Value{}
	case d.Text != nil:
		return dateutil.TextValue(*d.Text)
	case d.Millis != nil:
		return dateutil.MillisValue(*d.Millis)
	}
	return dateutil.Value{}
}

type (
	FormatRequest struct {
		Input   *DateTime `json:"input" validate:"required"`
		Pattern string    `json:"pattern"`
	}

	ParseRequest struct {
		Input *DateTime `json:"input" validate:"required"`
		// Pattern is optional; without it the input format is detected.
		Pattern string `json:"pattern"`
	}

	AddRequest struct {
		Input  *DateTime `json:"input" validate:"required"`
		Amount int64     `json:"amount"`
		Unit   string    `json:"unit" validate:"omitempty,unit"`
	}

	DistanceRequest struct {
		From *DateTime `json:"from" validate:"required"`
		To   *DateTime `json:"to" validate:"required"`
		Unit string    `json:"unit" validate:"omitempty,unit"`
	}

	CalendarRequest struct {
		Input *DateTime `json:"input" validate:"required"`
	}

	MomentRequest struct {
		Seconds int64  `json:"seconds"`
		MinUnit string `json:"minUnit" validate:"omitempty,oneof=d h m s"`
		MaxUnit string `json:"maxUnit" validate:"omitempty,oneof=d h m s"`
		Full    bool   `json:"full"`
	}
)

// Result fields are null and Reason is set when the engine produced no value.
type (
	TimestampResponse struct {
		Timestamp  *string `json:"timestamp"`
		UnixMillis *int64  `json:"unixMillis"`
		Formatted  *string `json:"formatted,omitempty"`
		Reason     string  `json:"reason,omitempty"`
	}

	FormatResponse struct {
		Formatted *string `json:"formatted"`
		Reason    string  `json:"reason,omitempty"`
	}

	DistanceResponse struct {
		Distance *int64 `json:"distance"`
		Reason   string `json:"reason,omitempty"`
	}

	DayOfYearResponse struct {
		DayOfYear *int   `json:"dayOfYear"`
		Reason    string `json:"reason,omitempty"`
	}

	DaysOfMonthResponse struct {
		DaysOfMonth *int   `json:"daysOfMonth"`
		Reason      string `json:"reason,omitempty"`
	}

	MomentResponse struct {
		Description string `json:"description"`
	}
)

func NewTimestampResponse(t time.Time) *TimestampResponse {
	timestamp := t.Format(time.RFC3339Nano)
	millis := t.UnixMilli()
	return &TimestampResponse{
		Timestamp:  &timestamp,
		UnixMillis: &millis,
	}
}
