package events

import (
	"fmt"
	"time"
)

// Record is a single row of the event table. Date is normalized to midnight;
// the clock portion lives in Clock/ClockRaw separately because the dataset
// mixes parseable times with free-form text like "doors at sunset".
type Record struct {
	Name     string
	Category string
	Location string

	Date time.Time

	Clock    time.Time
	HasClock bool
	ClockRaw string

	Price Price
}

// ClockDisplay renders the event time in 12-hour format, falling back to the
// raw stored text when the time never parsed.
func (r Record) ClockDisplay() string {
	if r.HasClock {
		return r.Clock.Format("3:04 PM")
	}

	return r.ClockRaw
}

// Price keeps both the parsed numeric value and the original text, since the
// dataset allows entries like "donation based" next to plain numbers.
type Price struct {
	Raw     string
	Value   float64
	Numeric bool
}

func (p Price) String() string {
	if !p.Numeric {
		return p.Raw
	}

	if p.Value == 0 {
		return "Free"
	}

	return fmt.Sprintf("$%.2f", p.Value)
}
