package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"roomsearch/internal/domain"
)

type roomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) domain.RoomRepository {
	return &roomRepository{DB: db}
}

// Parameters that are NULL leave their predicate true. The equipment predicate is gated
// by $5 rather than by the length of $6, so an inactive filter never turns into
// "rooms with no equipment".
const allCriteriaQuery = `
	SELECT r.id, r.name, r.capacity, b.id, b.name, b.opening_time, b.closing_time
	FROM rooms r
	INNER JOIN buildings b ON b.id = r.building_id
	WHERE ($1::integer IS NULL OR r.capacity >= $1::integer)
	  AND ($2::text IS NULL OR b.name = $2::text)
	  AND ($3::time IS NULL OR b.opening_time <= $3::time)
	  AND ($4::time IS NULL OR b.closing_time >= $4::time)
	  AND (NOT $5::boolean OR (
	        SELECT COUNT(DISTINCT e.name)
	        FROM equipment e
	        WHERE e.room_id = r.id AND e.name = ANY($6::text[])
	      ) = $7::integer)
	ORDER BY r.id
`

func (r *roomRepository) GetAllByAllCriteria(ctx context.Context, q domain.CatalogQuery) ([]*domain.Room, error) {
	names := q.Equipment.Names()
	if names == nil {
		names = []string{}
	}
	rows, err := r.DB.QueryContext(ctx, allCriteriaQuery,
		nullInt(q.MinCapacity),
		nullString(q.BuildingName),
		nullTimeOfDay(q.Start),
		nullTimeOfDay(q.End),
		q.Equipment.Active(),
		pq.Array(names),
		len(names),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachEquipment(ctx, rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	query := `
		SELECT r.id, r.name, r.capacity, b.id, b.name, b.opening_time, b.closing_time
		FROM rooms r
		INNER JOIN buildings b ON b.id = r.building_id
		WHERE r.id = $1
	`
	room, err := scanRoom(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachEquipment(ctx, []*domain.Room{room}); err != nil {
		return nil, err
	}
	return room, nil
}

// attachEquipment loads equipment for all rooms in one round trip.
func (r *roomRepository) attachEquipment(ctx context.Context, rooms []*domain.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Room, len(rooms))
	ids := make([]int64, len(rooms))
	for i, room := range rooms {
		room.Equipment = []*domain.Equipment{}
		byID[room.ID] = room
		ids[i] = room.ID
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT room_id, id, name FROM equipment WHERE room_id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var roomID int64
		e := &domain.Equipment{}
		if err := rows.Scan(&roomID, &e.ID, &e.Name); err != nil {
			return err
		}
		if room, ok := byID[roomID]; ok {
			room.Equipment = append(room.Equipment, e)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(s rowScanner) (*domain.Room, error) {
	room := &domain.Room{Equipment: []*domain.Equipment{}}
	b := &room.Building
	if err := s.Scan(&room.ID, &room.Name, &room.Capacity, &b.ID, &b.Name, &b.OpeningTime, &b.ClosingTime); err != nil {
		return nil, err
	}
	return room, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTimeOfDay(v *domain.TimeOfDay) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: v.String(), Valid: true}
}
