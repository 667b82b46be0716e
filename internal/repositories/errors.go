package repositories

import "errors"

// ErrDuplicate is returned when an insert hits a unique constraint
// (users.email, bookings (user_id, event_id)).
var ErrDuplicate = errors.New("duplicate record")

const pqUniqueViolation = "23505"
