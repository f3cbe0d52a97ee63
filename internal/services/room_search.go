package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"roomsearch/internal/domain"
)

type roomSearchService struct {
	roomRepo       domain.RoomRepository
	availability   domain.AvailabilityChecker
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewRoomSearchService creates a RoomSearchService. A nil logger discards output.
func NewRoomSearchService(roomRepo domain.RoomRepository, availability domain.AvailabilityChecker, logger *slog.Logger, timeout time.Duration) domain.RoomSearchService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &roomSearchService{
		roomRepo:       roomRepo,
		availability:   availability,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *roomSearchService) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Room, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	window, _ := criteria.Window()

	if s.contextTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.contextTimeout)
		defer cancel()
	}

	query := domain.CatalogQuery{
		MinCapacity:  criteria.MinCapacity,
		BuildingName: criteria.BuildingName,
		Equipment:    criteria.Equipment,
	}
	if window != nil {
		start, end := domain.TimeOfDayOf(window.Start), domain.TimeOfDayOf(window.End)
		query.Start, query.End = &start, &end
	}

	rooms, err := s.roomRepo.GetAllByAllCriteria(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	if window == nil {
		return rooms, nil
	}
	return s.filterBooked(ctx, rooms, *window)
}

// filterBooked keeps the candidates the booking service reports free, in the order it
// reports them. Ids outside the candidate set are ignored.
func (s *roomSearchService) filterBooked(ctx context.Context, candidates []*domain.Room, window domain.TimeWindow) ([]*domain.Room, error) {
	if len(candidates) == 0 {
		return []*domain.Room{}, nil
	}
	ids := make([]int64, len(candidates))
	isCandidate := make(map[int64]bool, len(candidates))
	for i, r := range candidates {
		ids[i] = r.ID
		isCandidate[r.ID] = true
	}

	free, err := s.availability.CheckAvailability(ctx, ids, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "booking service answered", "candidates", len(ids), "available", len(free))

	available := make([]*domain.Room, 0, len(free))
	seen := make(map[int64]bool, len(free))
	for _, id := range free {
		if !isCandidate[id] {
			s.logger.WarnContext(ctx, "booking service returned unknown room", "room_id", id)
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		room, err := s.roomRepo.FindRoomByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load room %d: %w", id, err)
		}
		available = append(available, room)
	}
	return available, nil
}
