package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roomsearch/internal/delivery/http/helpers"
	"roomsearch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeRoomSearchService implements domain.RoomSearchService for handler tests.
type fakeRoomSearchService struct {
	rooms        []*domain.Room
	err          error
	calls        int
	lastCriteria domain.SearchCriteria
}

func (f *fakeRoomSearchService) Search(_ context.Context, criteria domain.SearchCriteria) ([]*domain.Room, error) {
	f.calls++
	f.lastCriteria = criteria
	if f.err != nil {
		return nil, f.err
	}
	return f.rooms, nil
}

func sampleRooms() []*domain.Room {
	ewi := domain.NewBuilding("EWI", domain.NewTimeOfDay(9, 0, 0), domain.NewTimeOfDay(19, 0, 0))
	ewi.ID = 1
	a := domain.NewRoom("Ampere", 30, *ewi)
	a.ID = 1
	a.Equipment = []*domain.Equipment{{ID: 1, Name: "beamer"}}
	b := domain.NewRoom("Boole", 12, *ewi)
	b.ID = 2
	return []*domain.Room{a, b}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestRoomSearchController_SearchRooms(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		svcRooms   []*domain.Room
		svcErr     error
		wantStatus int
		wantCode   string
		wantCalled bool
		wantRooms  int
	}{
		{
			name:       "no criteria returns every room",
			query:      "",
			svcRooms:   sampleRooms(),
			wantStatus: http.StatusOK,
			wantCalled: true,
			wantRooms:  2,
		},
		{
			name:       "empty result is an empty list",
			query:      "?capacity=500",
			svcRooms:   nil,
			wantStatus: http.StatusOK,
			wantCalled: true,
			wantRooms:  0,
		},
		{
			name:       "non-numeric capacity",
			query:      "?capacity=lots",
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "malformed startsAt",
			query:      "?startsAt=yesterday&endsAt=2021-12-01T09:40:00",
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "only startsAt",
			query:      "?startsAt=2021-12-01T09:20:00",
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "endsAt before startsAt",
			query:      "?startsAt=2021-12-01T10:00:00&endsAt=2021-12-01T09:00:00",
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "negative capacity",
			query:      "?capacity=-1",
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "booking service unavailable",
			query:      "?startsAt=2021-12-01T09:20:00&endsAt=2021-12-01T09:40:00",
			svcErr:     fmt.Errorf("%w: connection refused", domain.ErrUpstreamUnavailable),
			wantStatus: http.StatusBadGateway,
			wantCode:   helpers.ErrCodeUpstreamUnavailable,
			wantCalled: true,
		},
		{
			name:       "malformed booking response",
			query:      "?startsAt=2021-12-01T09:20:00&endsAt=2021-12-01T09:40:00",
			svcErr:     fmt.Errorf("%w: unexpected body", domain.ErrMalformedResponse),
			wantStatus: http.StatusBadGateway,
			wantCode:   helpers.ErrCodeUpstreamUnavailable,
			wantCalled: true,
		},
		{
			name:       "store failure",
			query:      "?buildingName=EWI",
			svcErr:     errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
			wantCalled: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRoomSearchService{rooms: tt.svcRooms, err: tt.svcErr}
			ctrl := NewRoomSearchController(testLogger, svc, time.UTC)

			req := httptest.NewRequest(http.MethodGet, "/search/all-criteria"+tt.query, nil)
			rec := httptest.NewRecorder()
			ctrl.SearchRooms(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantCalled, svc.calls > 0)
			if tt.wantStatus != http.StatusOK {
				resp := decodeError(t, rec)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				assert.NotEmpty(t, resp.Error.Message)
				return
			}
			var body map[string][]json.RawMessage
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			rooms, ok := body["rooms"]
			require.True(t, ok, "rooms key must be present")
			assert.NotNil(t, rooms)
			assert.Len(t, rooms, tt.wantRooms)
		})
	}
}

func TestRoomSearchController_SearchRooms_BindsCriteria(t *testing.T) {
	svc := &fakeRoomSearchService{rooms: sampleRooms()}
	ctrl := NewRoomSearchController(testLogger, svc, time.UTC)

	req := httptest.NewRequest(http.MethodGet,
		"/search/all-criteria?capacity=10&buildingName=EWI&startsAt=2021-12-01T09:20&endsAt=2021-12-01T09:40:00.5"+
			"&equipment=beamer,whiteboard&equipment=beamer&equipment=", nil)
	rec := httptest.NewRecorder()
	ctrl.SearchRooms(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	c := svc.lastCriteria
	require.NotNil(t, c.MinCapacity)
	assert.Equal(t, 10, *c.MinCapacity)
	require.NotNil(t, c.BuildingName)
	assert.Equal(t, "EWI", *c.BuildingName)
	require.NotNil(t, c.StartsAt)
	assert.True(t, c.StartsAt.Equal(time.Date(2021, 12, 1, 9, 20, 0, 0, time.UTC)))
	require.NotNil(t, c.EndsAt)
	assert.True(t, c.EndsAt.Equal(time.Date(2021, 12, 1, 9, 40, 0, 500000000, time.UTC)))
	assert.True(t, c.Equipment.Active())
	assert.ElementsMatch(t, []string{"beamer", "whiteboard"}, c.Equipment.Names())
}

func TestRoomSearchController_SearchRooms_AbsentFiltersStayAbsent(t *testing.T) {
	svc := &fakeRoomSearchService{}
	ctrl := NewRoomSearchController(testLogger, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/search/all-criteria?buildingName=%20&capacity=", nil)
	rec := httptest.NewRecorder()
	ctrl.SearchRooms(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	c := svc.lastCriteria
	assert.Nil(t, c.MinCapacity)
	assert.Nil(t, c.BuildingName)
	assert.Nil(t, c.StartsAt)
	assert.Nil(t, c.EndsAt)
	assert.False(t, c.Equipment.Active())
	assert.JSONEq(t, `{"rooms":[]}`, rec.Body.String())
}

func TestRoomSearchController_SearchRooms_ResponseShape(t *testing.T) {
	svc := &fakeRoomSearchService{rooms: sampleRooms()[:1]}
	ctrl := NewRoomSearchController(testLogger, svc, time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/search/all-criteria", nil)
	rec := httptest.NewRecorder()
	ctrl.SearchRooms(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rooms":[{
		"id": 1,
		"name": "Ampere",
		"capacity": 30,
		"building": {"id": 1, "name": "EWI", "openingTime": "09:00:00", "closingTime": "19:00:00"},
		"equipment": [{"id": 1, "name": "beamer"}]
	}]}`, rec.Body.String())
}

func TestRoomSearchController_SearchRooms_HidesUpstreamDetail(t *testing.T) {
	svc := &fakeRoomSearchService{err: fmt.Errorf("%w: dial tcp 10.0.0.7:8082", domain.ErrUpstreamUnavailable)}
	ctrl := NewRoomSearchController(testLogger, svc, time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/search/all-criteria?startsAt=2021-12-01T09:20:00&endsAt=2021-12-01T09:40:00", nil)
	rec := httptest.NewRecorder()
	ctrl.SearchRooms(rec, req)

	resp := decodeError(t, rec)
	assert.Equal(t, "booking service unavailable", resp.Error.Message)
	assert.Nil(t, resp.Data)
}
