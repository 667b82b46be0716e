package services

import (
	"errors"
	"log"
	"time"

	"bookingapp/internal/models"
	"bookingapp/internal/repositories"
	"bookingapp/internal/utils"
)

var (
	ErrOTPInvalid       = errors.New("invalid otp")
	ErrOTPExpired       = errors.New("otp expired")
	ErrAlreadyConfirmed = errors.New("email already confirmed")
)

const defaultOTPTTL = 10 * time.Minute

// OTPService drives the unregistered -> otp-pending -> verified lifecycle.
// The code lives on the user row and is cleared on successful confirmation.
type OTPService struct {
	repo   repositories.UserRepository
	emails EmailService

	CodeTTL time.Duration // 0 means defaultOTPTTL
	now     func() time.Time
}

func NewOTPService(repo repositories.UserRepository, emails EmailService) *OTPService {
	return &OTPService{
		repo:    repo,
		emails:  emails,
		CodeTTL: defaultOTPTTL,
		now:     time.Now,
	}
}

func (s *OTPService) ttl() time.Duration {
	if s.CodeTTL <= 0 {
		return defaultOTPTTL
	}
	return s.CodeTTL
}

// Issue stores a fresh code on the user and emails it. Email failure is
// logged and swallowed so registration never rolls back on SMTP trouble.
func (s *OTPService) Issue(user *models.User) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.ttl())
	if err := s.repo.SetOTP(user.ID, code, expiresAt); err != nil {
		return err
	}
	user.OTP = &code
	user.OTPExpiry = &expiresAt

	if s.emails != nil {
		if err := s.emails.SendOTPEmail(user.FullName(), user.Email, code); err != nil {
			log.Printf("[otp][issue] warning: failed to send otp email to %s: %v", user.Email, err)
		}
	}
	return nil
}

// Confirm matches the submitted code against the stored one. On success the
// user becomes verified and the code is cleared so it cannot be replayed.
func (s *OTPService) Confirm(email, code string) error {
	user, err := s.repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.OTP == nil || *user.OTP != code {
		return ErrOTPInvalid
	}
	if user.OTPExpiry == nil || s.now().After(*user.OTPExpiry) {
		return ErrOTPExpired
	}
	if err := s.repo.MarkVerified(user.ID); err != nil {
		return err
	}
	log.Printf("[otp][confirm] OK user_id=%s", user.ID)
	return nil
}

// Resend always issues a new code, regardless of whether the previous one
// is still live.
func (s *OTPService) Resend(email string) error {
	user, err := s.repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAlreadyConfirmed
	}
	return s.Issue(user)
}
