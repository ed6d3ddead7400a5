package service

import (
	"errors"

	"djibtrade/config"
	"djibtrade/internal/auth"
	"djibtrade/internal/domain"
	"djibtrade/internal/models"

	evbus "github.com/asaskevich/EventBus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg   *config.Config
	users UserStore
	bus   evbus.Bus
}

func NewAuthService(cfg *config.Config, users UserStore, bus evbus.Bus) *AuthService {
	return &AuthService{cfg: cfg, users: users, bus: bus}
}

type RegisterInput struct {
	Email       string
	Password    string
	CompanyName string
	Phone       string
	Address     string
	City        string
}

// Register creates a company account with the user role and publishes
// user.created (preference seeding, welcome email). Role and premium flag
// are never client-controlled.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, string, error) {
	_, err := s.users.GetByEmail(in.Email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		CompanyName:  in.CompanyName,
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", "", err
	}
	s.bus.Publish(TopicUserCreated, u)

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if !u.IsActive {
		return nil, "", "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Refresh(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.users.GetByID(userID)
	if err != nil || !u.IsActive {
		return "", "", auth.ErrInvalidToken
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ChangePassword verifies the current password before setting the new one.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}
