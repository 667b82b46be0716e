package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"bookingapp/internal/models"
)

type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id string) (*models.Event, error)
	Update(event *models.Event) error
	Delete(id string) error
	List() ([]*models.Event, error)
	ListUpcoming() ([]*models.Event, error)
}

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `
	id, event_name, location, date_time, description, price, creator_id,
	created_at, updated_at
`

func (r *eventRepository) Create(event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO events (id, event_name, location, date_time, description, price, creator_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		event.ID,
		event.EventName,
		event.Location,
		event.DateTime,
		event.Description,
		event.Price,
		event.CreatorID,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("event create: %w", err)
	}
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	e := &models.Event{}
	var price sql.NullFloat64
	err := row.Scan(
		&e.ID, &e.EventName, &e.Location, &e.DateTime, &e.Description, &price,
		&e.CreatorID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		p := price.Float64
		e.Price = &p
	}
	return e, nil
}

func (r *eventRepository) GetByID(id string) (*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRow(q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("event get by id: %w", err)
	}
	return e, nil
}

func (r *eventRepository) Update(event *models.Event) error {
	const q = `
		UPDATE events
		SET event_name=$1, location=$2, date_time=$3, description=$4, price=$5, updated_at=NOW()
		WHERE id=$6
	`
	_, err := r.DB.Exec(q,
		event.EventName,
		event.Location,
		event.DateTime,
		event.Description,
		event.Price,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("event update: %w", err)
	}
	return nil
}

func (r *eventRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM events WHERE id=$1`, id)
	return err
}

func (r *eventRepository) list(q string, args ...any) ([]*models.Event, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r *eventRepository) List() ([]*models.Event, error) {
	return r.list(`SELECT ` + eventColumns + ` FROM events ORDER BY date_time`)
}

func (r *eventRepository) ListUpcoming() ([]*models.Event, error) {
	return r.list(`SELECT ` + eventColumns + ` FROM events WHERE date_time >= NOW() ORDER BY date_time`)
}
