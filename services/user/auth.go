package user

import (
	"errors"
	"strings"
	"time"

	userRepo "errandly/database/repository/user"
	"errandly/models"
	"errandly/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// tokenLifetime matches the session TTL kept in Redis.
const tokenLifetime = 7 * 24 * time.Hour

// Register validates registration details, creates the account and
// returns a session token.
func (s *DefaultUserService) Register(input RegisterInput) (*AuthResponse, error) {
	if strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" {
		return nil, utils.ValidationError("email, password, first name and last name are required")
	}
	if input.Role != models.RoleClient && input.Role != models.RoleProvider {
		return nil, utils.ValidationError("role must be CLIENT or PROVIDER")
	}

	if _, err := s.Repo.GetByEmail(input.Email); err == nil {
		return nil, utils.ConflictError("email already registered")
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Password:  string(hashed),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      input.Role,
		Status:    models.UserActive,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: u, Token: token}, nil
}

// Login verifies credentials and returns a session token.
func (s *DefaultUserService) Login(email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.ValidationError("invalid email or password")
		}
		return nil, err
	}

	if u.Status != models.UserActive {
		return nil, utils.PermissionError("account is not active")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, utils.ValidationError("invalid email or password")
	}

	u.LastActiveAt = time.Now()
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: u, Token: token}, nil
}

// Logout revokes the user's active session.
func (s *DefaultUserService) Logout(userID string) error {
	if s.Sessions == nil {
		return nil
	}
	return utils.RevokeSessionToken(s.Sessions, userID)
}

// issueToken signs a JWT and stores its hash as the active session.
func (s *DefaultUserService) issueToken(u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), tokenLifetime)
	if err != nil {
		return "", err
	}
	if s.Sessions != nil {
		if err := utils.SaveSessionToken(s.Sessions, u.ID, token); err != nil {
			return "", err
		}
	}
	return token, nil
}
