package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/rantai-skena/booking-api/internal/middleware"
	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/repository"
)

// testEnvelope mirrors the response envelope for assertions.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// newTestContext builds an echo context carrying an optional JSON body and,
// when p is non-zero, the principal the role guard would have set.
func newTestContext(method, target, body string, p model.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p.ID != "" {
		c.Set(middleware.ContextUserID, p.ID)
		c.Set(middleware.ContextPrincipal, p)
	}
	return c, rec
}

// fakeEventStore is a mutex-guarded in-memory EventStore. When apps is set,
// deleting an event also drops its applications, mirroring the repository's
// transactional cascade.
type fakeEventStore struct {
	mu     sync.Mutex
	events map[string]model.Event
	agents map[string]string // agent id -> display name
	apps   *fakeApplicationStore
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[string]model.Event{}, agents: map[string]string{}}
}

func (s *fakeEventStore) Create(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	s.events[e.ID] = *e
	return nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	return ev, nil
}

func (s *fakeEventStore) GetByIDAndAgent(_ context.Context, id, agentID string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok || ev.AgentID != agentID {
		return model.Event{}, repository.ErrEventNotFound
	}
	return ev, nil
}

func (s *fakeEventStore) ListByAgent(_ context.Context, agentID string) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, ev := range s.events {
		if ev.AgentID == agentID {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeEventStore) ListPublished(_ context.Context) ([]model.PublishedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.PublishedEvent
	for _, ev := range s.events {
		if ev.IsPublished {
			out = append(out, model.PublishedEvent{Event: ev, AgentName: s.agents[ev.AgentID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeEventStore) GetDetail(_ context.Context, id string) (model.PublishedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return model.PublishedEvent{}, repository.ErrEventNotFound
	}
	return model.PublishedEvent{Event: ev, AgentName: s.agents[ev.AgentID]}, nil
}

func (s *fakeEventStore) Update(_ context.Context, e *model.Event, agentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[e.ID]
	if !ok || ev.AgentID != agentID {
		return repository.ErrEventNotFound
	}
	s.events[e.ID] = *e
	return nil
}

func (s *fakeEventStore) DeleteByIDAndAgent(_ context.Context, id, agentID string) error {
	s.mu.Lock()
	ev, ok := s.events[id]
	if !ok || ev.AgentID != agentID {
		s.mu.Unlock()
		return repository.ErrEventNotFound
	}
	delete(s.events, id)
	s.mu.Unlock()
	if s.apps != nil {
		s.apps.deleteByEvent(id)
	}
	return nil
}

// seed stores an event directly, bypassing Create.
func (s *fakeEventStore) seed(ev model.Event) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	s.events[ev.ID] = ev
	return ev
}

// fakeApplicationStore is a mutex-guarded in-memory ApplicationStore. The
// events reference resolves event ownership for UpdateStatusByAgent.
type fakeApplicationStore struct {
	mu     sync.Mutex
	rows   map[string]model.Application // keyed by (eventID, artistID)
	byID   map[string]string
	events *fakeEventStore
}

func newFakeApplicationStore(events *fakeEventStore) *fakeApplicationStore {
	return &fakeApplicationStore{
		rows:   map[string]model.Application{},
		byID:   map[string]string{},
		events: events,
	}
}

func pairKey(eventID, artistID string) string { return eventID + "\x00" + artistID }

func (s *fakeApplicationStore) CreateOrGet(_ context.Context, eventID, artistID string, message *string) (model.Application, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(eventID, artistID)
	if app, ok := s.rows[key]; ok {
		return app, false, nil
	}
	app := model.Application{
		ID:        uuid.NewString(),
		EventID:   eventID,
		ArtistID:  artistID,
		Status:    model.StatusPending,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.rows[key] = app
	s.byID[app.ID] = key
	return app, true, nil
}

func (s *fakeApplicationStore) ListByArtist(_ context.Context, artistID string) ([]model.ArtistApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ArtistApplication
	for _, app := range s.rows {
		if app.ArtistID != artistID {
			continue
		}
		s.events.mu.Lock()
		ev := s.events.events[app.EventID]
		s.events.mu.Unlock()
		out = append(out, model.ArtistApplication{
			ID:            app.ID,
			Status:        app.Status,
			Message:       app.Message,
			CreatedAt:     app.CreatedAt,
			EventID:       app.EventID,
			EventName:     ev.Name,
			EventLocation: ev.Location,
			EventStartsAt: ev.StartsAt,
			AgentID:       ev.AgentID,
		})
	}
	// Creation order, matching the repository's ORDER BY created_at.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeApplicationStore) ListByEvent(_ context.Context, eventID string) ([]model.EventApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.EventApplication
	for _, app := range s.rows {
		if app.EventID == eventID {
			out = append(out, model.EventApplication{
				ID:        app.ID,
				Status:    app.Status,
				Message:   app.Message,
				CreatedAt: app.CreatedAt,
				ArtistID:  app.ArtistID,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeApplicationStore) UpdateStatusByAgent(_ context.Context, id, agentID, status string) (model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.byID[id]
	if !ok {
		return model.Application{}, repository.ErrApplicationNotFound
	}
	app := s.rows[key]
	s.events.mu.Lock()
	ev, found := s.events.events[app.EventID]
	s.events.mu.Unlock()
	if !found || ev.AgentID != agentID {
		return model.Application{}, repository.ErrApplicationNotFound
	}
	app.Status = status
	s.rows[key] = app
	return app, nil
}

// deleteByEvent drops every application filed for eventID, the in-memory
// counterpart of the repository's cascade.
func (s *fakeApplicationStore) deleteByEvent(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, app := range s.rows {
		if app.EventID == eventID {
			delete(s.rows, key)
			delete(s.byID, app.ID)
		}
	}
}

func (s *fakeApplicationStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// fakeAccountStore is an in-memory AccountStore.
type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[string]model.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[string]model.Account{}}
}

func (s *fakeAccountStore) GetByID(_ context.Context, id string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return model.Account{}, repository.ErrAccountNotFound
	}
	return acc, nil
}

func (s *fakeAccountStore) SetRole(_ context.Context, id, role string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return model.Account{}, repository.ErrAccountNotFound
	}
	acc.Role = &role
	s.accounts[id] = acc
	return acc, nil
}

// recordingNotifier counts notifications for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	submitted []model.Application
	changed   []model.Application
}

func (n *recordingNotifier) ApplicationSubmitted(_ context.Context, app model.Application) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, app)
}

func (n *recordingNotifier) ApplicationStatusChanged(_ context.Context, app model.Application) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, app)
}

func (n *recordingNotifier) submittedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.submitted)
}

func (n *recordingNotifier) changedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.changed)
}
