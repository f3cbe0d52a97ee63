package domain

import (
	"context"
	"fmt"
	"time"
)

// EquipmentFilter says whether a search constrains equipment at all, and if so which
// items a room must carry. The zero value is "no filter".
type EquipmentFilter struct {
	active bool
	names  []string
}

// AnyEquipment returns the filter that leaves equipment unconstrained.
func AnyEquipment() EquipmentFilter {
	return EquipmentFilter{}
}

// RequireEquipment returns a filter matching rooms that carry every given name.
// Duplicate names collapse. With no names it is the same as AnyEquipment.
func RequireEquipment(names ...string) EquipmentFilter {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	if len(unique) == 0 {
		return AnyEquipment()
	}
	return EquipmentFilter{active: true, names: unique}
}

// Active reports whether the filter constrains anything.
func (f EquipmentFilter) Active() bool {
	return f.active
}

// Names returns a copy of the required names, nil when inactive.
func (f EquipmentFilter) Names() []string {
	if !f.active {
		return nil
	}
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// TimeWindow is a half-open interval of local date-times.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// SearchCriteria is the request-scoped set of optional filters.
type SearchCriteria struct {
	MinCapacity  *int
	BuildingName *string
	StartsAt     *time.Time
	EndsAt       *time.Time
	Equipment    EquipmentFilter
}

// Window validates the time bounds and returns the window, or nil when none was given.
// A window with only one bound, or with start not before end, is ErrInvalidCriteria.
func (c SearchCriteria) Window() (*TimeWindow, error) {
	switch {
	case c.StartsAt == nil && c.EndsAt == nil:
		return nil, nil
	case c.StartsAt == nil || c.EndsAt == nil:
		return nil, fmt.Errorf("%w: startsAt and endsAt must be given together", ErrInvalidCriteria)
	case !c.StartsAt.Before(*c.EndsAt):
		return nil, fmt.Errorf("%w: startsAt must be before endsAt", ErrInvalidCriteria)
	}
	return &TimeWindow{Start: *c.StartsAt, End: *c.EndsAt}, nil
}

// Validate checks every criterion independently of the store.
func (c SearchCriteria) Validate() error {
	if c.MinCapacity != nil && *c.MinCapacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidCriteria)
	}
	_, err := c.Window()
	return err
}

// RoomSearchService resolves search criteria into matching rooms.
type RoomSearchService interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]*Room, error)
}
