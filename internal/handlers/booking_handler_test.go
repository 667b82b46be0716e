package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookingapp/internal/middleware"
	"bookingapp/internal/models"
	"bookingapp/internal/pdf"
	"bookingapp/internal/repositories"
	"bookingapp/internal/services"
)

type memEventRepo struct {
	events map[string]*models.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: map[string]*models.Event{}}
}

func (r *memEventRepo) Create(event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.events[event.ID] = event
	return nil
}

func (r *memEventRepo) GetByID(id string) (*models.Event, error) { return r.events[id], nil }

func (r *memEventRepo) Update(event *models.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *memEventRepo) Delete(id string) error {
	delete(r.events, id)
	return nil
}

func (r *memEventRepo) List() ([]*models.Event, error) {
	var res []*models.Event
	for _, e := range r.events {
		res = append(res, e)
	}
	return res, nil
}

func (r *memEventRepo) ListUpcoming() ([]*models.Event, error) { return r.List() }

type memBookingRepo struct {
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*models.Booking{}}
}

func (r *memBookingRepo) Create(booking *models.Booking) error {
	for _, b := range r.bookings {
		if b.UserID == booking.UserID && b.EventID == booking.EventID {
			return repositories.ErrDuplicate
		}
	}
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	booking.BookingDate = time.Now()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *memBookingRepo) GetByID(id string) (*models.Booking, error) { return r.bookings[id], nil }

func (r *memBookingRepo) ListByEvent(eventID string) ([]*models.Booking, error) {
	var res []*models.Booking
	for _, b := range r.bookings {
		if b.EventID == eventID {
			res = append(res, b)
		}
	}
	return res, nil
}

func (r *memBookingRepo) ExistsByUserAndEvent(userID, eventID string) (bool, error) {
	for _, b := range r.bookings {
		if b.UserID == userID && b.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) UpdateEvent(bookingID, eventID string) error {
	b, ok := r.bookings[bookingID]
	if !ok {
		return fmt.Errorf("no such booking %s", bookingID)
	}
	b.EventID = eventID
	return nil
}

func (r *memBookingRepo) Delete(id string) error {
	delete(r.bookings, id)
	return nil
}

type bookingFixture struct {
	router   *gin.Engine
	users    *memUserRepo
	events   *memEventRepo
	bookings *memBookingRepo
	service  services.BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	users := newMemUserRepo()
	events := newMemEventRepo()
	bookings := newMemBookingRepo()

	authService := services.NewAuthService()
	userService := services.NewUserService(users, authService)
	bookingService := services.NewBookingService(
		bookings, events, users, pdf.NewTicketGenerator(t.TempDir()), nil, 0)
	h := NewBookingHandler(bookingService)

	r := gin.New()
	grp := r.Group("/api/v1/booking", middleware.AuthRequired(userService))
	grp.GET("/:id", h.GetBookings)
	grp.POST("/:id", h.CreateBooking)
	grp.PUT("/:id", h.ReassignBooking)
	grp.DELETE("/:id", h.DeleteBooking)
	grp.GET("/:id/ticket", h.Ticket)

	return &bookingFixture{router: r, users: users, events: events, bookings: bookings, service: bookingService}
}

func (f *bookingFixture) seedEvent(t *testing.T) *models.Event {
	t.Helper()
	event := &models.Event{
		EventName: "GopherCon",
		Location:  "Berlin",
		DateTime:  time.Now().Add(24 * time.Hour),
		CreatorID: uuid.NewString(),
	}
	if err := f.events.Create(event); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return event
}

func TestGetBookingsEmptyEvent(t *testing.T) {
	f := newBookingFixture(t)
	user := seedAccount(t, f.users, "ada@example.com", "Secret99x", false)
	event := f.seedEvent(t)
	token := accessTokenFor(t, user.ID)

	w := doAuthedJSON(t, f.router, http.MethodGet, "/api/v1/booking/"+event.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", w.Code, w.Body.String())
	}
}

func TestGetBookingsListsEvent(t *testing.T) {
	f := newBookingFixture(t)
	user := seedAccount(t, f.users, "ada@example.com", "Secret99x", false)
	event := f.seedEvent(t)
	token := accessTokenFor(t, user.ID)

	if _, err := f.service.CreateBooking(user.ID, event.ID); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	w := doAuthedJSON(t, f.router, http.MethodGet, "/api/v1/booking/"+event.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestCreateBookingViaAPI(t *testing.T) {
	f := newBookingFixture(t)
	user := seedAccount(t, f.users, "ada@example.com", "Secret99x", false)
	event := f.seedEvent(t)
	token := accessTokenFor(t, user.ID)

	w := doAuthedJSON(t, f.router, http.MethodPost, "/api/v1/booking/"+event.ID, token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if w := doAuthedJSON(t, f.router, http.MethodPost, "/api/v1/booking/"+event.ID, token, nil); w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409, body %s", w.Code, w.Body.String())
	}
}

func TestCreateBookingForOtherUser(t *testing.T) {
	f := newBookingFixture(t)
	plain := seedAccount(t, f.users, "ada@example.com", "Secret99x", false)
	other := seedAccount(t, f.users, "bob@example.com", "Secret99x", false)
	admin := seedAccount(t, f.users, "admin@example.com", "Secret99x", true)
	event := f.seedEvent(t)

	body := gin.H{"user_id": other.ID}
	w := doAuthedJSON(t, f.router, http.MethodPost, "/api/v1/booking/"+event.ID, accessTokenFor(t, plain.ID), body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin status = %d, want 403, body %s", w.Code, w.Body.String())
	}
	w = doAuthedJSON(t, f.router, http.MethodPost, "/api/v1/booking/"+event.ID, accessTokenFor(t, admin.ID), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("admin status = %d, want 201, body %s", w.Code, w.Body.String())
	}
}

// Reassign, delete and ticket are for the booking owner or an admin only.
func TestBookingAccessGuard(t *testing.T) {
	f := newBookingFixture(t)
	owner := seedAccount(t, f.users, "ada@example.com", "Secret99x", false)
	stranger := seedAccount(t, f.users, "bob@example.com", "Secret99x", false)
	admin := seedAccount(t, f.users, "admin@example.com", "Secret99x", true)
	event := f.seedEvent(t)
	other := f.seedEvent(t)

	booking, err := f.service.CreateBooking(owner.ID, event.ID)
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	strangerToken := accessTokenFor(t, stranger.ID)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"reassign", http.MethodPut, "/api/v1/booking/" + booking.ID, gin.H{"event_id": other.ID}},
		{"ticket", http.MethodGet, "/api/v1/booking/" + booking.ID + "/ticket", nil},
		{"delete", http.MethodDelete, "/api/v1/booking/" + booking.ID, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doAuthedJSON(t, f.router, tc.method, tc.path, strangerToken, tc.body)
			if w.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403, body %s", w.Code, w.Body.String())
			}
		})
	}
	if b, _ := f.bookings.GetByID(booking.ID); b == nil || b.EventID != event.ID {
		t.Fatal("denied requests must not modify the booking")
	}

	// the owner and an admin both pass
	w := doAuthedJSON(t, f.router, http.MethodPut, "/api/v1/booking/"+booking.ID, accessTokenFor(t, owner.ID), gin.H{"event_id": other.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("owner reassign status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	w = doAuthedJSON(t, f.router, http.MethodDelete, "/api/v1/booking/"+booking.ID, accessTokenFor(t, admin.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin delete status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}
