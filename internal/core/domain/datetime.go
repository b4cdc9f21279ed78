package domain

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Wire formats shared by the persisted state file and every view payload.
// Dates travel as yyyy-MM-dd, clock times as 24-hour hh:mm.
const (
	DateLayout      = "2006-01-02"
	ClockTimeLayout = "15:04"
)

// Date is a calendar day. The zero value means "not set" and serializes as an
// empty string.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is a time of day without a date. The zero value means "not set"
// and serializes as an empty string.
type ClockTime struct {
	time.Time
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)}
}

func ParseClockTime(s string) (ClockTime, error) {
	if s == "" {
		return ClockTime{}, nil
	}
	t, err := time.Parse(ClockTimeLayout, s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return ClockTime{t}, nil
}

func (c ClockTime) String() string {
	if c.IsZero() {
		return ""
	}
	return c.Format(ClockTimeLayout)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode time: %w", err)
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
