package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/caucashanus/rezervacni-system/internal/gcal"
	"github.com/caucashanus/rezervacni-system/internal/locations"
)

type stubSession struct {
	mu      sync.Mutex
	events  map[string][]gcal.Event
	errs    map[string]error
	delays  map[string]time.Duration
	windows map[string]gcal.Window
	calls   int
}

func newStubSession() *stubSession {
	return &stubSession{
		events:  make(map[string][]gcal.Event),
		errs:    make(map[string]error),
		delays:  make(map[string]time.Duration),
		windows: make(map[string]gcal.Window),
	}
}

func (s *stubSession) ListEvents(ctx context.Context, calendarID string, w gcal.Window) ([]gcal.Event, error) {
	if d := s.delays[calendarID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	s.calls++
	s.windows[calendarID] = w
	s.mu.Unlock()
	if err := s.errs[calendarID]; err != nil {
		return nil, err
	}
	return s.events[calendarID], nil
}

type stubConnector struct {
	session *stubSession
	err     error
	calls   int
}

func (c *stubConnector) Connect(ctx context.Context, locationID string) (Session, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.session, nil
}

func newTestService(conn *stubConnector) *EventService {
	return &EventService{
		Connector: conn,
		Timezone:  time.UTC,
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestEventsMergeKeepsConfigurationOrder(t *testing.T) {
	loc, err := locations.Get("kacerov")
	if err != nil {
		t.Fatal(err)
	}

	session := newStubSession()
	for i, b := range loc.Bindings {
		session.events[b.CalendarID] = []gcal.Event{{ID: fmt.Sprintf("e%d", i)}}
	}
	// The first calendar answers last; the merge must not care.
	session.delays[loc.Bindings[0].CalendarID] = 50 * time.Millisecond

	svc := newTestService(&stubConnector{session: session})
	events, err := svc.Events(context.Background(), "kacerov", "")
	if err != nil {
		t.Fatal(err)
	}

	if len(events) != len(loc.Bindings) {
		t.Fatalf("expected %d events, got %d", len(loc.Bindings), len(events))
	}
	for i, ev := range events {
		if want := fmt.Sprintf("e%d", i); ev.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, ev.ID)
		}
	}
}

func TestEventsTagSourceBinding(t *testing.T) {
	loc, err := locations.Get("hagibor")
	if err != nil {
		t.Fatal(err)
	}

	session := newStubSession()
	for _, b := range loc.Bindings {
		session.events[b.CalendarID] = []gcal.Event{
			{ID: b.CalendarID + "/1"},
			{ID: b.CalendarID + "/2"},
		}
	}

	svc := newTestService(&stubConnector{session: session})
	events, err := svc.Events(context.Background(), "hagibor", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}

	byCalendar := make(map[string]locations.Binding)
	for _, b := range loc.Bindings {
		byCalendar[b.CalendarID] = b
	}
	for _, ev := range events {
		b, ok := byCalendar[ev.CalendarID]
		if !ok {
			t.Fatalf("event %s tagged with unknown calendar %s", ev.ID, ev.CalendarID)
		}
		if ev.MasterName != b.Name {
			t.Fatalf("event %s: expected name %s, got %s", ev.ID, b.Name, ev.MasterName)
		}
	}
}

func TestEventsUnknownLocationFailsBeforeConnecting(t *testing.T) {
	conn := &stubConnector{session: newStubSession()}
	svc := newTestService(conn)

	if _, err := svc.Events(context.Background(), "brno", ""); !errors.Is(err, locations.ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
	if conn.calls != 0 {
		t.Fatalf("expected no connect, got %d", conn.calls)
	}
	if conn.session.calls != 0 {
		t.Fatalf("expected no queries, got %d", conn.session.calls)
	}
}

func TestEventsBadDateFailsBeforeConnecting(t *testing.T) {
	conn := &stubConnector{session: newStubSession()}
	svc := newTestService(conn)

	if _, err := svc.Events(context.Background(), "modrany", "30.08.2026"); err == nil {
		t.Fatal("expected date parse error")
	}
	if conn.calls != 0 {
		t.Fatalf("expected no connect, got %d", conn.calls)
	}
}

func TestEventsConnectFailurePropagates(t *testing.T) {
	wantErr := errors.New("key file missing")
	svc := newTestService(&stubConnector{err: wantErr})

	if _, err := svc.Events(context.Background(), "modrany", ""); !errors.Is(err, wantErr) {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestEventsSingleCalendarFailureFailsAggregation(t *testing.T) {
	loc, err := locations.Get("kacerov")
	if err != nil {
		t.Fatal(err)
	}

	session := newStubSession()
	wantErr := errors.New("quota exceeded")
	for i, b := range loc.Bindings {
		if i == 3 {
			session.errs[b.CalendarID] = wantErr
			continue
		}
		session.events[b.CalendarID] = []gcal.Event{{ID: b.CalendarID}}
	}

	svc := newTestService(&stubConnector{session: session})
	if _, err := svc.Events(context.Background(), "kacerov", ""); !errors.Is(err, wantErr) {
		t.Fatalf("expected calendar error, got %v", err)
	}
}

func TestEventsAllowPartialSkipsFailedCalendars(t *testing.T) {
	loc, err := locations.Get("kacerov")
	if err != nil {
		t.Fatal(err)
	}

	session := newStubSession()
	for i, b := range loc.Bindings {
		if i == 0 || i == 4 {
			session.errs[b.CalendarID] = errors.New("unavailable")
			continue
		}
		session.events[b.CalendarID] = []gcal.Event{{ID: b.CalendarID}}
	}

	svc := newTestService(&stubConnector{session: session})
	svc.AllowPartial = true

	events, err := svc.Events(context.Background(), "kacerov", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != len(loc.Bindings)-2 {
		t.Fatalf("expected %d events, got %d", len(loc.Bindings)-2, len(events))
	}

	// Survivors still appear in configuration order.
	pos := 0
	for i, b := range loc.Bindings {
		if i == 0 || i == 4 {
			continue
		}
		if events[pos].ID != b.CalendarID {
			t.Fatalf("position %d: expected %s, got %s", pos, b.CalendarID, events[pos].ID)
		}
		pos++
	}
}

func TestEventsDayWindowCoversRequestedDay(t *testing.T) {
	session := newStubSession()
	svc := newTestService(&stubConnector{session: session})

	if _, err := svc.Events(context.Background(), "modrany", "2026-08-30"); err != nil {
		t.Fatal(err)
	}

	loc, _ := locations.Get("modrany")
	w := session.windows[loc.Bindings[0].CalendarID]
	wantMin := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !w.Min.Equal(wantMin) {
		t.Fatalf("expected window start %v, got %v", wantMin, w.Min)
	}
	if !w.Max.After(wantMin.Add(23 * time.Hour)) || !w.Max.Before(wantMin.Add(24*time.Hour)) {
		t.Fatalf("expected window end within the same day, got %v", w.Max)
	}
}

func TestEventsWithoutDateQueriesFromNow(t *testing.T) {
	session := newStubSession()
	svc := newTestService(&stubConnector{session: session})

	if _, err := svc.Events(context.Background(), "modrany", ""); err != nil {
		t.Fatal(err)
	}

	loc, _ := locations.Get("modrany")
	w := session.windows[loc.Bindings[0].CalendarID]
	if !w.Min.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("expected window start at now, got %v", w.Min)
	}
	if !w.Max.IsZero() {
		t.Fatalf("expected unbounded window, got max %v", w.Max)
	}
}

func TestEventsQueryTimeoutCancelsHungQueries(t *testing.T) {
	loc, err := locations.Get("hagibor")
	if err != nil {
		t.Fatal(err)
	}

	session := newStubSession()
	session.delays[loc.Bindings[0].CalendarID] = time.Minute

	svc := newTestService(&stubConnector{session: session})
	svc.QueryTimeout = 50 * time.Millisecond

	start := time.Now()
	_, err = svc.Events(context.Background(), "hagibor", "")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout did not bound the call")
	}
}
