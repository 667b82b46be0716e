package services

import (
	"fmt"
	"time"

	"bookingapp/internal/models"
	"bookingapp/internal/repositories"
)

// in-memory stand-ins for the Postgres repositories

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List() ([]*models.User, error) {
	var res []*models.User
	for _, u := range r.users {
		res = append(res, u)
	}
	return res, nil
}

func (r *fakeUserRepo) ListAdmins() ([]*models.User, error) {
	var res []*models.User
	for _, u := range r.users {
		if u.IsAdmin {
			res = append(res, u)
		}
	}
	return res, nil
}

func (r *fakeUserRepo) ListByActive(active bool) ([]*models.User, error) {
	var res []*models.User
	for _, u := range r.users {
		if u.IsActive == active {
			res = append(res, u)
		}
	}
	return res, nil
}

func (r *fakeUserRepo) ListByVerified(verified bool) ([]*models.User, error) {
	var res []*models.User
	for _, u := range r.users {
		if u.IsVerified == verified {
			res = append(res, u)
		}
	}
	return res, nil
}

func (r *fakeUserRepo) GetCount() (int, error) {
	return len(r.users), nil
}

func (r *fakeUserRepo) SetOTP(userID, code string, expiresAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("no such user %s", userID)
	}
	u.OTP = &code
	u.OTPExpiry = &expiresAt
	return nil
}

func (r *fakeUserRepo) MarkVerified(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("no such user %s", userID)
	}
	u.IsVerified = true
	u.OTP = nil
	u.OTPExpiry = nil
	return nil
}

func (r *fakeUserRepo) SetAdmin(userID string, isAdmin bool) error {
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("no such user %s", userID)
	}
	u.IsAdmin = isAdmin
	return nil
}

func (r *fakeUserRepo) SetActive(userID string, isActive bool) error {
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("no such user %s", userID)
	}
	u.IsActive = isActive
	return nil
}

type fakeEventRepo struct {
	events map[string]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*models.Event{}}
}

func (r *fakeEventRepo) Create(event *models.Event) error {
	if event.ID == "" {
		event.ID = fmt.Sprintf("event-%d", len(r.events)+1)
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(id string) (*models.Event, error) {
	return r.events[id], nil
}

func (r *fakeEventRepo) Update(event *models.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) Delete(id string) error {
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) List() ([]*models.Event, error) {
	var res []*models.Event
	for _, e := range r.events {
		res = append(res, e)
	}
	return res, nil
}

func (r *fakeEventRepo) ListUpcoming() ([]*models.Event, error) {
	var res []*models.Event
	for _, e := range r.events {
		if e.DateTime.After(time.Now()) {
			res = append(res, e)
		}
	}
	return res, nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	// when true, ExistsByUserAndEvent lies, emulating two requests racing
	// past the check before either insert commits
	skipExistsCheck bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}}
}

func (r *fakeBookingRepo) Create(booking *models.Booking) error {
	for _, b := range r.bookings {
		if b.UserID == booking.UserID && b.EventID == booking.EventID {
			return repositories.ErrDuplicate
		}
	}
	if booking.ID == "" {
		booking.ID = fmt.Sprintf("booking-%d", len(r.bookings)+1)
	}
	booking.BookingDate = time.Now()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) ListByEvent(eventID string) ([]*models.Booking, error) {
	var res []*models.Booking
	for _, b := range r.bookings {
		if b.EventID == eventID {
			res = append(res, b)
		}
	}
	return res, nil
}

func (r *fakeBookingRepo) ExistsByUserAndEvent(userID, eventID string) (bool, error) {
	if r.skipExistsCheck {
		return false, nil
	}
	for _, b := range r.bookings {
		if b.UserID == userID && b.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) UpdateEvent(bookingID, eventID string) error {
	b, ok := r.bookings[bookingID]
	if !ok {
		return fmt.Errorf("no such booking %s", bookingID)
	}
	for _, other := range r.bookings {
		if other.ID != bookingID && other.UserID == b.UserID && other.EventID == eventID {
			return repositories.ErrDuplicate
		}
	}
	b.EventID = eventID
	return nil
}

func (r *fakeBookingRepo) Delete(id string) error {
	delete(r.bookings, id)
	return nil
}

type fakeEmailService struct {
	sent    []string // otp codes, in send order
	sendErr error
}

func (s *fakeEmailService) SendOTPEmail(name, email, otp string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, otp)
	return nil
}
