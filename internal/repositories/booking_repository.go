package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bookingapp/internal/models"
)

type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	ListByEvent(eventID string) ([]*models.Booking, error)
	ExistsByUserAndEvent(userID, eventID string) (bool, error)
	UpdateEvent(bookingID, eventID string) error
	Delete(id string) error
}

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{DB: db}
}

// Create relies on the UNIQUE(user_id, event_id) constraint: two concurrent
// inserts for the same pair cannot both commit, the loser gets ErrDuplicate.
func (r *bookingRepository) Create(booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO bookings (id, user_id, event_id)
		VALUES ($1,$2,$3)
		RETURNING booking_date
	`
	err := r.DB.QueryRow(q, booking.ID, booking.UserID, booking.EventID).Scan(&booking.BookingDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("booking create: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(id string) (*models.Booking, error) {
	const q = `SELECT id, user_id, event_id, booking_date FROM bookings WHERE id = $1`
	b := &models.Booking{}
	err := r.DB.QueryRow(q, id).Scan(&b.ID, &b.UserID, &b.EventID, &b.BookingDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("booking get by id: %w", err)
	}
	return b, nil
}

func (r *bookingRepository) ListByEvent(eventID string) ([]*models.Booking, error) {
	const q = `
		SELECT id, user_id, event_id, booking_date
		FROM bookings
		WHERE event_id = $1
		ORDER BY booking_date
	`
	rows, err := r.DB.Query(q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.EventID, &b.BookingDate); err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *bookingRepository) ExistsByUserAndEvent(userID, eventID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE user_id=$1 AND event_id=$2)`
	var exists bool
	if err := r.DB.QueryRow(q, userID, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("booking exists: %w", err)
	}
	return exists, nil
}

func (r *bookingRepository) UpdateEvent(bookingID, eventID string) error {
	_, err := r.DB.Exec(`UPDATE bookings SET event_id=$1 WHERE id=$2`, eventID, bookingID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("booking update event: %w", err)
	}
	return nil
}

func (r *bookingRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM bookings WHERE id=$1`, id)
	return err
}
