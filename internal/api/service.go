package api

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/caucashanus/rezervacni-system/internal/gcal"
	"github.com/caucashanus/rezervacni-system/internal/locations"

	"golang.org/x/sync/errgroup"
)

// Session is the per-location calendar handle the service queries.
type Session interface {
	ListEvents(ctx context.Context, calendarID string, w gcal.Window) ([]gcal.Event, error)
}

// Connector authenticates to the calendar provider for one location.
type Connector interface {
	Connect(ctx context.Context, locationID string) (Session, error)
}

type ConnectorFunc func(ctx context.Context, locationID string) (Session, error)

func (f ConnectorFunc) Connect(ctx context.Context, locationID string) (Session, error) {
	return f(ctx, locationID)
}

// EventService merges the bookings of every barber at one location into a
// single list for a given day.
type EventService struct {
	Connector    Connector
	Timezone     *time.Location
	QueryTimeout time.Duration

	// AllowPartial skips calendars whose query failed instead of failing
	// the whole aggregation.
	AllowPartial bool

	// Now is the clock used for the open-ended "from now on" window.
	Now func() time.Time
}

// Events fetches and merges the location's bookings. With a date
// (YYYY-MM-DD) the window covers that whole local day; without one it runs
// from now onward. The merged list keeps the binding configuration order:
// all of calendar 1's events, then calendar 2's, and so on, each group in
// the provider's chronological order. The frontend relies on that order
// for stable barber columns, so it is never re-sorted globally.
func (s *EventService) Events(ctx context.Context, locationID, date string) ([]gcal.Event, error) {
	loc, err := locations.Get(locationID)
	if err != nil {
		return nil, err
	}

	var w gcal.Window
	if date != "" {
		w, err = gcal.DayWindow(date, s.Timezone)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", date, err)
		}
	} else {
		w = gcal.From(s.now())
	}

	if s.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.QueryTimeout)
		defer cancel()
	}

	session, err := s.Connector.Connect(ctx, loc.ID)
	if err != nil {
		return nil, err
	}

	// One query per binding, run concurrently, joined into slots indexed
	// by binding position so the output order stays deterministic no
	// matter which query finishes first.
	perCalendar := make([][]gcal.Event, len(loc.Bindings))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range loc.Bindings {
		i, b := i, b
		g.Go(func() error {
			events, err := session.ListEvents(gctx, b.CalendarID, w)
			if err != nil {
				if s.AllowPartial {
					log.Printf("skipping calendar %s (%s): %v", b.CalendarID, b.Name, err)
					return nil
				}
				return err
			}
			for j := range events {
				events[j].MasterName = b.Name
				events[j].CalendarID = b.CalendarID
			}
			perCalendar[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, events := range perCalendar {
		n += len(events)
	}
	merged := make([]gcal.Event, 0, n)
	for _, events := range perCalendar {
		merged = append(merged, events...)
	}
	return merged, nil
}

func (s *EventService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
