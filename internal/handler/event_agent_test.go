package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rantai-skena/booking-api/internal/model"
)

func agentPrincipal(id string) model.Principal {
	return model.Principal{ID: id, Role: model.RoleAgent}
}

func TestCreateEventValidation(t *testing.T) {
	h := NewEventHandler(newFakeEventStore())
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"location":"Jakarta","startsAt":"2026-10-01T19:00:00Z"}`, "name and location are required"},
		{"missing location", `{"name":"Gig","startsAt":"2026-10-01T19:00:00Z"}`, "name and location are required"},
		{"missing startsAt", `{"name":"Gig","location":"Jakarta"}`, "startsAt is required"},
		{"bad startsAt", `{"name":"Gig","location":"Jakarta","startsAt":"tomorrow"}`, "invalid startsAt format"},
		{"bad endsAt", `{"name":"Gig","location":"Jakarta","startsAt":"2026-10-01T19:00:00Z","endsAt":"late"}`, "invalid endsAt format"},
		{"endsAt before startsAt", `{"name":"Gig","location":"Jakarta","startsAt":"2026-10-01T19:00:00Z","endsAt":"2026-10-01T18:00:00Z"}`, "endsAt must not precede startsAt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/events", tc.body, agentPrincipal("agent-1"))
			require.NoError(t, h.CreateEvent(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tc.want, env.Error)
		})
	}
}

func TestCreateEvent(t *testing.T) {
	store := newFakeEventStore()
	h := NewEventHandler(store)
	body := `{"name":"Warehouse Night","location":"Bandung","startsAt":"2026-10-01T19:00:00Z","endsAt":"2026-10-01T23:00:00Z","genres":["punk","hardcore"],"isPublished":true}`
	c, rec := newTestContext(http.MethodPost, "/api/events", body, agentPrincipal("agent-1"))
	require.NoError(t, h.CreateEvent(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Event
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "agent-1", got.AgentID)
	assert.Equal(t, []string{"punk", "hardcore"}, got.Genres)
	assert.True(t, got.IsPublished)
	require.NotNil(t, got.EndsAt)

	stored, err := store.GetByID(c.Request().Context(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse Night", stored.Name)
}

func TestCreateEventEqualStartAndEnd(t *testing.T) {
	h := NewEventHandler(newFakeEventStore())
	body := `{"name":"Gig","location":"Jakarta","startsAt":"2026-10-01T19:00:00Z","endsAt":"2026-10-01T19:00:00Z"}`
	c, rec := newTestContext(http.MethodPost, "/api/events", body, agentPrincipal("agent-1"))
	require.NoError(t, h.CreateEvent(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUpdateEventPartial(t *testing.T) {
	store := newFakeEventStore()
	end := time.Date(2026, 10, 1, 23, 0, 0, 0, time.UTC)
	ev := store.seed(model.Event{
		AgentID:     "agent-1",
		Name:        "Gig",
		Location:    "Jakarta",
		StartsAt:    time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
		EndsAt:      &end,
		Genres:      []string{"punk"},
		IsPublished: false,
	})
	h := NewEventHandler(store)

	c, rec := newTestContext(http.MethodPut, "/api/events/"+ev.ID, `{"name":"Gig v2","isPublished":true}`, agentPrincipal("agent-1"))
	c.SetParamNames("id")
	c.SetParamValues(ev.ID)
	require.NoError(t, h.UpdateEvent(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.GetByID(c.Request().Context(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gig v2", stored.Name)
	assert.True(t, stored.IsPublished)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Jakarta", stored.Location)
	require.NotNil(t, stored.EndsAt)
	assert.True(t, stored.EndsAt.Equal(end))
}

func TestUpdateEventClearsEndsAt(t *testing.T) {
	store := newFakeEventStore()
	end := time.Date(2026, 10, 1, 23, 0, 0, 0, time.UTC)
	ev := store.seed(model.Event{
		AgentID:  "agent-1",
		Name:     "Gig",
		Location: "Jakarta",
		StartsAt: time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
		EndsAt:   &end,
	})
	h := NewEventHandler(store)

	c, rec := newTestContext(http.MethodPut, "/api/events/"+ev.ID, `{"endsAt":""}`, agentPrincipal("agent-1"))
	c.SetParamNames("id")
	c.SetParamValues(ev.ID)
	require.NoError(t, h.UpdateEvent(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.GetByID(c.Request().Context(), ev.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.EndsAt)
}

func TestUpdateEventForeignAgent(t *testing.T) {
	store := newFakeEventStore()
	ev := store.seed(model.Event{
		AgentID:  "agent-1",
		Name:     "Gig",
		Location: "Jakarta",
		StartsAt: time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
	})
	h := NewEventHandler(store)

	c, rec := newTestContext(http.MethodPut, "/api/events/"+ev.ID, `{"name":"Hijacked"}`, agentPrincipal("agent-2"))
	c.SetParamNames("id")
	c.SetParamValues(ev.ID)
	require.NoError(t, h.UpdateEvent(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgEventNotYours, decodeEnvelope(t, rec).Error)

	// The record is untouched.
	stored, err := store.GetByID(c.Request().Context(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gig", stored.Name)
}

func TestDeleteEvent(t *testing.T) {
	store := newFakeEventStore()
	ev := store.seed(model.Event{
		AgentID:  "agent-1",
		Name:     "Gig",
		Location: "Jakarta",
		StartsAt: time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
	})
	h := NewEventHandler(store)

	// A foreign agent gets the merged 404 and deletes nothing.
	c, rec := newTestContext(http.MethodDelete, "/api/events/"+ev.ID, "", agentPrincipal("agent-2"))
	c.SetParamNames("id")
	c.SetParamValues(ev.ID)
	require.NoError(t, h.DeleteEvent(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, err := store.GetByID(c.Request().Context(), ev.ID)
	require.NoError(t, err)

	// The owner succeeds.
	c, rec = newTestContext(http.MethodDelete, "/api/events/"+ev.ID, "", agentPrincipal("agent-1"))
	c.SetParamNames("id")
	c.SetParamValues(ev.ID)
	require.NoError(t, h.DeleteEvent(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	_, err = store.GetByID(c.Request().Context(), ev.ID)
	assert.Error(t, err)
}
