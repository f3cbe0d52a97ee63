package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roomsearch/internal/delivery/http/helpers"
	"roomsearch/internal/domain"
)

// SearchRoomsRequest holds the optional query parameters of GET /search/all-criteria.
type SearchRoomsRequest struct {
	Capacity     *int
	BuildingName *string
	StartsAt     *time.Time
	EndsAt       *time.Time
	Equipment    []string

	loc *time.Location
}

// BindQuery implements helpers.QueryBinder.
func (s *SearchRoomsRequest) BindQuery(q url.Values) []string {
	var errs []string
	loc := s.loc
	if loc == nil {
		loc = time.Local
	}
	capacity, err := helpers.QueryInt(q, "capacity")
	if err != nil {
		errs = append(errs, err.Error())
	}
	startsAt, err := helpers.QueryLocalDateTime(q, "startsAt", loc)
	if err != nil {
		errs = append(errs, err.Error())
	}
	endsAt, err := helpers.QueryLocalDateTime(q, "endsAt", loc)
	if err != nil {
		errs = append(errs, err.Error())
	}
	s.Capacity = capacity
	s.BuildingName = helpers.QueryString(q, "buildingName")
	s.StartsAt = startsAt
	s.EndsAt = endsAt
	s.Equipment = helpers.QueryList(q, "equipment")
	return errs
}

// Validate implements helpers.Validator.
func (s *SearchRoomsRequest) Validate() []string {
	if err := s.Criteria().Validate(); err != nil {
		return []string{strings.TrimPrefix(err.Error(), domain.ErrInvalidCriteria.Error()+": ")}
	}
	return nil
}

// Criteria converts the request into domain search criteria.
func (s *SearchRoomsRequest) Criteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		MinCapacity:  s.Capacity,
		BuildingName: s.BuildingName,
		StartsAt:     s.StartsAt,
		EndsAt:       s.EndsAt,
		Equipment:    domain.RequireEquipment(s.Equipment...),
	}
}

// SearchRoomsResponse is the body of GET /search/all-criteria (200). Rooms is never null.
type SearchRoomsResponse struct {
	Rooms []*domain.Room `json:"rooms"`
}

type RoomSearchController struct {
	Logger   *slog.Logger
	Service  domain.RoomSearchService
	Location *time.Location
}

// NewRoomSearchController creates the controller. Date-times without zone are read in loc
// (time.Local when nil).
func NewRoomSearchController(logger *slog.Logger, svc domain.RoomSearchService, loc *time.Location) *RoomSearchController {
	if loc == nil {
		loc = time.Local
	}
	return &RoomSearchController{
		Logger:   logger,
		Service:  svc,
		Location: loc,
	}
}

// SearchRooms godoc
// @Summary Search rooms by criteria
// @Description Returns the rooms matching every supplied filter. When both startsAt and endsAt are given, rooms whose building is closed during the window or that are already booked are excluded.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param capacity query int false "Minimum capacity"
// @Param buildingName query string false "Exact building name"
// @Param startsAt query string false "Window start, ISO-8601 local date-time (e.g. 2021-12-01T09:20:00)"
// @Param endsAt query string false "Window end, ISO-8601 local date-time"
// @Param equipment query []string false "Required equipment (all must be present)" collectionFormat(multi)
// @Success 200 {object} controllers.SearchRoomsResponse "rooms matching all criteria"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /search/all-criteria [get]
func (c *RoomSearchController) SearchRooms(w http.ResponseWriter, r *http.Request) {
	req := &SearchRoomsRequest{loc: c.Location}
	if !helpers.BindAndValidate(w, r, req) {
		return
	}
	rooms, err := c.Service.Search(r.Context(), req.Criteria())
	if err != nil {
		status, code := helpers.StatusForError(err)
		message := err.Error()
		switch status {
		case http.StatusBadGateway:
			message = "booking service unavailable"
		case http.StatusInternalServerError:
			message = "internal server error"
		}
		if status >= http.StatusInternalServerError {
			c.Logger.ErrorContext(r.Context(), "room search failed", "path", r.URL.Path, "err", err)
		}
		helpers.WriteJSONError(w, status, code, message)
		return
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	helpers.WriteJSON(w, http.StatusOK, SearchRoomsResponse{Rooms: rooms})
}
