package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	CompanyName      string `json:"companyName"`
	IndustryCategory string `json:"industryCategory"`
}

// Service handles registration, login and token verification.
type Service struct {
	repo     *Repository
	log      zerolog.Logger
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a new auth service. secret signs HS256 tokens.
func NewService(repo *Repository, secret string, tokenTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		log:      log.With().Str("service", "auth").Logger(),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *Service) Register(in RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, fmt.Errorf("company name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:               uuid.New().String(),
		Email:            email,
		PasswordHash:     string(hash),
		CompanyName:      strings.TrimSpace(in.CompanyName),
		IndustryCategory: strings.TrimSpace(in.IndustryCategory),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	s.log.Info().Str("tenant", user.ID).Msg("Registered new account")
	return user, nil
}

// Login verifies credentials and returns a signed JWT on success.
func (s *Service) Login(email, password string) (string, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err == ErrNotFound {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, user, nil
}

// VerifyToken parses a JWT and returns the tenant id it was issued for.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}

// UserByID loads the account for a verified tenant id.
func (s *Service) UserByID(id string) (*User, error) {
	return s.repo.FindByID(id)
}
