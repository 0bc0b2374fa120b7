package auth

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles user persistence in finance.db.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new user repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "auth").Logger(),
	}
}

// Create stores a new user. Returns ErrEmailTaken on a duplicate email.
func (r *Repository) Create(user *User) error {
	now := time.Now().Unix()

	_, err := r.db.Exec(`
		INSERT INTO users (id, email, password_hash, company_name, industry_category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.PasswordHash, user.CompanyName, user.IndustryCategory, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.CreatedAt = time.Unix(now, 0).UTC()
	user.UpdatedAt = user.CreatedAt
	return nil
}

// FindByEmail retrieves a user by email. Returns ErrNotFound when absent.
func (r *Repository) FindByEmail(email string) (*User, error) {
	return r.findWhere(`email = ?`, email)
}

// FindByID retrieves a user by id. Returns ErrNotFound when absent.
func (r *Repository) FindByID(id string) (*User, error) {
	return r.findWhere(`id = ?`, id)
}

func (r *Repository) findWhere(where string, arg interface{}) (*User, error) {
	var user User
	var createdAt, updatedAt int64

	err := r.db.QueryRow(`
		SELECT id, email, password_hash, company_name, industry_category, created_at, updated_at
		FROM users
		WHERE `+where, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CompanyName,
		&user.IndustryCategory,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	user.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &user, nil
}
