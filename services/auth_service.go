package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"college-chatbot/internal/database"
	"college-chatbot/internal/logger"
	"college-chatbot/models"
	"college-chatbot/utils"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidRole        = errors.New("role must be student or faculty")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
)

// UserStore is the users collection.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type AuthService struct {
	users      UserStore
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(users UserStore, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

type LoginResult struct {
	Token string
	User  models.UserInfo
}

// Login checks the password of the account registered under username with the
// requested role. Unknown user, role mismatch and wrong password look the same.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	role := strings.TrimSpace(req.Role)
	if username == "" || req.Password == "" || role == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Role != role || !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.Username, user.Role, user.Division, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{
		Token: token,
		User:  models.UserInfo{Username: user.Username, Role: user.Role, Division: user.Division},
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Role:     strings.TrimSpace(req.Role),
		Division: strings.TrimSpace(req.Division),
	}
	if user.Username == "" || req.Password == "" || user.Role == "" || user.Division == "" {
		return nil, ErrMissingFields
	}
	if user.Role != models.RoleStudent && user.Role != models.RoleFaculty {
		return nil, ErrInvalidRole
	}

	if _, err := s.users.FindByUsername(ctx, user.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user registered", "username", user.Username, "role", user.Role, "division", user.Division)
	return user, nil
}

// DefaultUsers are the demo accounts created on first start.
var DefaultUsers = []models.RegisterRequest{
	{Username: "faculty1", Password: "password123", Role: models.RoleFaculty, Division: "1"},
	{Username: "faculty2", Password: "password123", Role: models.RoleFaculty, Division: "2"},
	{Username: "faculty3", Password: "password123", Role: models.RoleFaculty, Division: "3"},
	{Username: "faculty4", Password: "password1.23", Role: models.RoleFaculty, Division: "4"},
	{Username: "student1", Password: "password123", Role: models.RoleStudent, Division: "1"},
	{Username: "student2", Password: "password123", Role: models.RoleStudent, Division: "2"},
	{Username: "student3", Password: "password123", Role: models.RoleStudent, Division: "3"},
	{Username: "student4", Password: "password123", Role: models.RoleStudent, Division: "4"},
}

// SeedDefaultUsers creates whichever DefaultUsers are missing. Existing accounts are
// left untouched, so it is safe to run on every start.
func (s *AuthService) SeedDefaultUsers(ctx context.Context) (int, error) {
	created := 0
	for _, req := range DefaultUsers {
		_, err := s.Register(ctx, req)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrUsernameTaken):
		default:
			return created, fmt.Errorf("seed %s: %w", req.Username, err)
		}
	}

	logger.Info("default users seeded", "created", created, "total", len(DefaultUsers))
	return created, nil
}
