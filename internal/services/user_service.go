package services

import (
	"errors"
	"strings"

	"bookingapp/internal/models"
	"bookingapp/internal/repositories"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserService interface {
	CreateUserWithPassword(user *models.User, plainPassword string) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id string) error
	ListUsers() ([]*models.User, error)
	ListAdmins() ([]*models.User, error)
	ListUsersByActive(active bool) ([]*models.User, error)
	ListUsersByVerified(verified bool) ([]*models.User, error)
	GetUserCount() (int, error)
	SetAdmin(id string, isAdmin bool) (*models.User, error)
	SetActive(id string, isActive bool) (*models.User, error)
}

type userService struct {
	repo        repositories.UserRepository
	authService AuthService
}

func NewUserService(repo repositories.UserRepository, authService AuthService) UserService {
	return &userService{
		repo:        repo,
		authService: authService,
	}
}

func (s *userService) CreateUserWithPassword(user *models.User, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return errors.New("password is required")
	}
	hashedPassword, err := s.authService.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashedPassword
	user.Email = normalizeEmail(user.Email)

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(normalizeEmail(email))
}

func (s *userService) UpdateUser(user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	if err := s.repo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *userService) DeleteUser(id string) error {
	return s.repo.Delete(id)
}

func (s *userService) ListUsers() ([]*models.User, error) {
	return s.repo.List()
}

func (s *userService) ListAdmins() ([]*models.User, error) {
	return s.repo.ListAdmins()
}

func (s *userService) ListUsersByActive(active bool) ([]*models.User, error) {
	return s.repo.ListByActive(active)
}

func (s *userService) ListUsersByVerified(verified bool) ([]*models.User, error) {
	return s.repo.ListByVerified(verified)
}

func (s *userService) GetUserCount() (int, error) {
	return s.repo.GetCount()
}

func (s *userService) SetAdmin(id string, isAdmin bool) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := s.repo.SetAdmin(id, isAdmin); err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	return user, nil
}

func (s *userService) SetActive(id string, isActive bool) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := s.repo.SetActive(id, isActive); err != nil {
		return nil, err
	}
	user.IsActive = isActive
	return user, nil
}
