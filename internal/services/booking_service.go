package services

import (
	"errors"
	"fmt"
	"log"

	"bookingapp/internal/models"
	"bookingapp/internal/pdf"
	"bookingapp/internal/repositories"
)

var (
	ErrAlreadyBooked   = errors.New("booking already exists for this user and event")
	ErrBookingNotFound = errors.New("booking not found")
)

type BookingService interface {
	CreateBooking(userID, eventID string) (*models.Booking, error)
	GetBookingByID(id string) (*models.Booking, error)
	ListBookingsByEvent(eventID string) ([]*models.Booking, error)
	ReassignBooking(bookingID, eventID string) (*models.Booking, error)
	DeleteBooking(id string) error
	GenerateTicket(bookingID string) (string, error)
}

type bookingService struct {
	repo      repositories.BookingRepository
	eventRepo repositories.EventRepository
	userRepo  repositories.UserRepository
	tickets   pdf.Generator
	telegram  *TelegramService
	opsChatID int64
}

func NewBookingService(
	repo repositories.BookingRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	tickets pdf.Generator,
	telegram *TelegramService,
	opsChatID int64,
) BookingService {
	return &bookingService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		tickets:   tickets,
		telegram:  telegram,
		opsChatID: opsChatID,
	}
}

// CreateBooking enforces one booking per (user, event). The existence check
// is a fast path only; the unique constraint in the repository is what makes
// concurrent duplicates impossible.
func (s *bookingService) CreateBooking(userID, eventID string) (*models.Booking, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.repo.ExistsByUserAndEvent(userID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyBooked
	}

	booking := &models.Booking{UserID: userID, EventID: eventID}
	if err := s.repo.Create(booking); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}

	s.notify(fmt.Sprintf("New booking: %s booked %q (%s)", user.FullName(), event.EventName, booking.ID))
	return booking, nil
}

func (s *bookingService) notify(text string) {
	if s.telegram == nil || s.opsChatID == 0 {
		return
	}
	if err := s.telegram.SendMessage(s.opsChatID, text); err != nil {
		log.Printf("[booking][notify] warning: telegram send failed: %v", err)
	}
}

func (s *bookingService) GetBookingByID(id string) (*models.Booking, error) {
	booking, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListBookingsByEvent(eventID string) ([]*models.Booking, error) {
	return s.repo.ListByEvent(eventID)
}

func (s *bookingService) ReassignBooking(bookingID, eventID string) (*models.Booking, error) {
	booking, err := s.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if err := s.repo.UpdateEvent(bookingID, eventID); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	booking.EventID = eventID
	return booking, nil
}

func (s *bookingService) DeleteBooking(id string) error {
	booking, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	return s.repo.Delete(id)
}

// GenerateTicket renders a PDF for the booking and returns the file path.
func (s *bookingService) GenerateTicket(bookingID string) (string, error) {
	booking, err := s.GetBookingByID(bookingID)
	if err != nil {
		return "", err
	}
	event, err := s.eventRepo.GetByID(booking.EventID)
	if err != nil {
		return "", err
	}
	if event == nil {
		return "", ErrEventNotFound
	}
	user, err := s.userRepo.GetByID(booking.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	return s.tickets.GenerateTicket(pdf.TicketData{
		BookingID:   booking.ID,
		EventName:   event.EventName,
		Location:    event.Location,
		DateTime:    event.DateTime,
		HolderName:  user.FullName(),
		HolderEmail: user.Email,
		BookedAt:    booking.BookingDate,
	})
}
