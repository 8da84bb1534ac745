package gcal

import "time"

// EventTime mirrors the provider's start/end encoding: timed events carry
// an RFC3339 DateTime, all-day events carry a plain Date.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Creator is the address of the account that created the event.
type Creator struct {
	Email string `json:"email,omitempty"`
}

// Event is one booking as the frontend consumes it: the provider's fields
// plus the barber tag added during aggregation. MasterName and CalendarID
// assign the event to its display column.
type Event struct {
	ID          string    `json:"id"`
	Status      string    `json:"status,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Creator     *Creator  `json:"creator,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
	MasterName  string    `json:"masterName"`
	CalendarID  string    `json:"calendarId"`
}

// Window is the query range. A zero Max means unbounded.
type Window struct {
	Min time.Time
	Max time.Time
}

// DayWindow returns the window covering the whole local day named by date
// (YYYY-MM-DD) in tz.
func DayWindow(date string, tz *time.Location) (Window, error) {
	start, err := time.ParseInLocation("2006-01-02", date, tz)
	if err != nil {
		return Window{}, err
	}
	return Window{
		Min: start,
		Max: start.AddDate(0, 0, 1).Add(-time.Millisecond),
	}, nil
}

// From returns the unbounded window starting at t.
func From(t time.Time) Window {
	return Window{Min: t}
}
