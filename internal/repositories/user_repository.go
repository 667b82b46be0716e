package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bookingapp/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	List() ([]*models.User, error)
	ListAdmins() ([]*models.User, error)
	ListByActive(active bool) ([]*models.User, error)
	ListByVerified(verified bool) ([]*models.User, error)
	GetCount() (int, error)

	// otp helpers
	SetOTP(userID, code string, expiresAt time.Time) error
	MarkVerified(userID string) error

	// admin helpers
	SetAdmin(userID string, isAdmin bool) error
	SetActive(userID string, isActive bool) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, email, password_hash, first_name, last_name, avatar,
	is_verified, is_admin, is_active,
	otp, otp_expiry, created_at, updated_at
`

func (r *userRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, avatar,
			is_verified, is_admin, is_active, otp, otp_expiry
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Avatar,
		user.IsVerified,
		user.IsAdmin,
		user.IsActive,
		user.OTP,
		user.OTPExpiry,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var (
		otp    sql.NullString
		otpExp sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Avatar,
		&u.IsVerified, &u.IsAdmin, &u.IsActive,
		&otp, &otpExp, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if otp.Valid {
		s := otp.String
		u.OTP = &s
	}
	if otpExp.Valid {
		t := otpExp.Time
		u.OTPExpiry = &t
	}
	return u, nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRow(q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.DB.QueryRow(q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET email=$1, password_hash=$2, first_name=$3, last_name=$4, avatar=$5,
		    is_verified=$6, is_admin=$7, is_active=$8, updated_at=NOW()
		WHERE id=$9
	`
	_, err := r.DB.Exec(q,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Avatar,
		user.IsVerified,
		user.IsAdmin,
		user.IsActive,
		user.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *userRepository) list(q string, args ...any) ([]*models.User, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) List() ([]*models.User, error) {
	return r.list(`SELECT ` + userColumns + ` FROM users ORDER BY created_at`)
}

func (r *userRepository) ListAdmins() ([]*models.User, error) {
	return r.list(`SELECT ` + userColumns + ` FROM users WHERE is_admin = TRUE ORDER BY created_at`)
}

func (r *userRepository) ListByActive(active bool) ([]*models.User, error) {
	return r.list(`SELECT `+userColumns+` FROM users WHERE is_active = $1 ORDER BY created_at`, active)
}

func (r *userRepository) ListByVerified(verified bool) ([]*models.User, error) {
	return r.list(`SELECT `+userColumns+` FROM users WHERE is_verified = $1 ORDER BY created_at`, verified)
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}

// ===== otp helpers =====

// SetOTP stores a fresh code and its expiry together.
func (r *userRepository) SetOTP(userID, code string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET otp=$1, otp_expiry=$2, updated_at=NOW()
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, code, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("user set otp: %w", err)
	}
	return nil
}

// MarkVerified flips is_verified and clears the code so it cannot be replayed.
func (r *userRepository) MarkVerified(userID string) error {
	const q = `
		UPDATE users
		SET is_verified=TRUE, otp=NULL, otp_expiry=NULL, updated_at=NOW()
		WHERE id=$1
	`
	_, err := r.DB.Exec(q, userID)
	if err != nil {
		return fmt.Errorf("user mark verified: %w", err)
	}
	return nil
}

// ===== admin helpers =====

func (r *userRepository) SetAdmin(userID string, isAdmin bool) error {
	_, err := r.DB.Exec(`UPDATE users SET is_admin=$1, updated_at=NOW() WHERE id=$2`, isAdmin, userID)
	return err
}

func (r *userRepository) SetActive(userID string, isActive bool) error {
	_, err := r.DB.Exec(`UPDATE users SET is_active=$1, updated_at=NOW() WHERE id=$2`, isActive, userID)
	return err
}
