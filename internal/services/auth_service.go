package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"samysilks/internal/domain"
	"samysilks/internal/repos"
)

var (
	ErrBadCreds    = errors.New("invalid email or password")
	ErrEmailExists = errors.New("email already registered")
)

type AuthService struct {
	Users *repos.UserRepo
}

// Register creates a user account with a bcrypt-hashed password and binds
// the caller's session to it.
func (s *AuthService) Register(sid, email, password, name, phone string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if existing, err := s.Users.ByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailExists
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Phone: phone,
		Hash:  string(h),
		Role:  domain.RoleUser,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
