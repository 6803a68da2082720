package domain

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks JSON numbers for every amount.
	decimal.MarshalJSONWithoutQuotes = true
}

const DateLayout = "2006-01-02"

var (
	timestampLayouts = []string{time.RFC3339Nano, time.RFC3339}
	dayLayouts       = []string{DateLayout, "2006-01"}
)

var location atomic.Pointer[time.Location]

// SetLocation sets the zone backend timestamps are read in when they are
// reduced to a calendar day. The default is UTC.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	location.Store(loc)
}

func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// Date is a calendar day or month exchanged as YYYY-MM-DD. It holds no
// instant: the embedded time is always midnight UTC of that day, so month
// arithmetic on it must run in UTC. Timestamps from the backend are
// accepted and reduced to their day in Location().
type Date struct {
	time.Time
}

// NewDate keeps the calendar day t falls on in its own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses any of the accepted date layouts.
func ParseDate(s string) (Date, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.In(Location())), nil
		}
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
