package gcal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// maxEventsPerCalendar bounds the worst-case response size of a single
// range query. No barber has anywhere near this many bookings per day.
const maxEventsPerCalendar = 100

// Connector builds read-only calendar sessions from per-location
// service-account keys. The key file is re-read on every Connect; the
// response cache in front of the aggregation keeps the read rate low.
type Connector struct {
	KeyDir string
}

func NewConnector(keyDir string) *Connector {
	return &Connector{KeyDir: keyDir}
}

// Connect authenticates with the location's service account and returns a
// session scoped to the read-only calendar permission.
func (c *Connector) Connect(ctx context.Context, locationID string) (*Session, error) {
	keyPath := filepath.Join(c.KeyDir, locationID+".json")
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read service account key for %s: %w", locationID, err)
	}

	conf, err := google.JWTConfigFromJSON(key, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key for %s: %w", locationID, err)
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Session{service: service}, nil
}

// Session is an authenticated handle on one location's calendars.
type Session struct {
	service *calendar.Service
}

// ListEvents runs one range query against a single calendar. Results come
// back in the provider's chronological order, recurring events already
// expanded into single instances.
func (s *Session) ListEvents(ctx context.Context, calendarID string, w Window) ([]Event, error) {
	call := s.service.Events.List(calendarID).
		TimeMin(w.Min.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxEventsPerCalendar).
		Context(ctx)
	if !w.Max.IsZero() {
		call = call.TimeMax(w.Max.Format(time.RFC3339))
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list events for %s: %w", calendarID, err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, FromProvider(item))
	}
	return events, nil
}

// FromProvider projects a provider event onto the wire model. The barber
// tag fields are left empty; the aggregation fills them in.
func FromProvider(item *calendar.Event) Event {
	ev := Event{
		ID:          item.Id,
		Status:      item.Status,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
	}
	if item.Creator != nil {
		ev.Creator = &Creator{Email: item.Creator.Email}
	}
	if item.Start != nil {
		ev.Start = EventTime{DateTime: item.Start.DateTime, Date: item.Start.Date}
	}
	if item.End != nil {
		ev.End = EventTime{DateTime: item.End.DateTime, Date: item.End.Date}
	}
	return ev
}
