package services

import (
	"errors"

	"bookingapp/internal/models"
	"bookingapp/internal/repositories"
)

var ErrEventNotFound = errors.New("event not found")

type EventService interface {
	CreateEvent(event *models.Event) error
	GetEventByID(id string) (*models.Event, error)
	UpdateEvent(event *models.Event) error
	DeleteEvent(id string) error
	ListEvents() ([]*models.Event, error)
	ListUpcomingEvents() ([]*models.Event, error)
}

type eventService struct {
	repo repositories.EventRepository
}

func NewEventService(repo repositories.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) CreateEvent(event *models.Event) error {
	return s.repo.Create(event)
}

func (s *eventService) GetEventByID(id string) (*models.Event, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) UpdateEvent(event *models.Event) error {
	return s.repo.Update(event)
}

func (s *eventService) DeleteEvent(id string) error {
	return s.repo.Delete(id)
}

func (s *eventService) ListEvents() ([]*models.Event, error) {
	return s.repo.List()
}

func (s *eventService) ListUpcomingEvents() ([]*models.Event, error) {
	return s.repo.ListUpcoming()
}
