package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without date or zone, used for building opening hours
// and for the time-of-day part of a search window.
// swagger:model TimeOfDay
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

const timeOfDayLayout = "15:04:05"

// NewTimeOfDay returns the TimeOfDay for h:m:s.
func NewTimeOfDay(h, m, s int) TimeOfDay {
	return TimeOfDay{Hour: h, Minute: m, Second: s}
}

// TimeOfDayOf returns the wall-clock part of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTimeOfDay parses "15:04:05" or "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{timeOfDayLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

// String renders the value as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Before reports whether t is strictly earlier than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.seconds() < u.seconds()
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// MarshalJSON implements json.Marshaler.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner. lib/pq hands TIME columns over as time.Time; text
// protocols and mocks may pass strings or bytes.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = TimeOfDayOf(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Building groups rooms and defines when they can be used.
// swagger:model Building
type Building struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	OpeningTime TimeOfDay `json:"openingTime" swaggertype:"string" example:"09:00:00"`
	ClosingTime TimeOfDay `json:"closingTime" swaggertype:"string" example:"19:00:00"`
}

// NewBuilding returns a new Building. ID is set by the store.
func NewBuilding(name string, opening, closing TimeOfDay) *Building {
	return &Building{Name: name, OpeningTime: opening, ClosingTime: closing}
}

// Equipment is a named item installed in exactly one room.
// swagger:model Equipment
type Equipment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Room is a bookable room. Rooms are read-only from the search path.
// swagger:model Room
type Room struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Capacity  int          `json:"capacity"`
	Building  Building     `json:"building"`
	Equipment []*Equipment `json:"equipment"`
}

// NewRoom returns a new Room without equipment. ID is set by the store.
func NewRoom(name string, capacity int, building Building) *Room {
	return &Room{Name: name, Capacity: capacity, Building: building, Equipment: []*Equipment{}}
}

// HasEquipment reports whether the room carries every named item (case-sensitive).
func (r *Room) HasEquipment(names ...string) bool {
	have := make(map[string]struct{}, len(r.Equipment))
	for _, e := range r.Equipment {
		have[e.Name] = struct{}{}
	}
	for _, n := range names {
		if _, ok := have[n]; !ok {
			return false
		}
	}
	return true
}

// CatalogQuery is the composite filter handed to the catalog store in one call.
// Nil pointers and an inactive equipment filter leave the result unconstrained.
type CatalogQuery struct {
	MinCapacity  *int
	BuildingName *string
	// Start and End are the time-of-day bounds of the search window; rooms are kept only
	// when their building is open for the whole window. Both set or both nil.
	Start     *TimeOfDay
	End       *TimeOfDay
	Equipment EquipmentFilter
}

// RoomRepository is the catalog store.
type RoomRepository interface {
	// GetAllByAllCriteria returns every room matching q, ordered by id.
	GetAllByAllCriteria(ctx context.Context, q CatalogQuery) ([]*Room, error)
	// FindRoomByID returns ErrNotFound when no room has the id.
	FindRoomByID(ctx context.Context, id int64) (*Room, error)
}
