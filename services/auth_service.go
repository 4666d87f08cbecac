package services

import (
	"errors"
	"strings"
	"time"

	"urbanserv/entity"
	"urbanserv/repository"
	"urbanserv/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService is a thin credential layer: register, login, profile. The
// profile address doubles as the default contact snapshot at checkout.
type AuthService struct {
	Users     *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(users *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) Register(email, password, fullName, phone, address string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.Users.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		FullName: strings.TrimSpace(fullName),
		Phone:    strings.TrimSpace(phone),
		Address:  strings.TrimSpace(address),
		Role:     "customer",
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}

func (s *AuthService) Profile(userID uint) (*entity.User, error) {
	u, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(userID uint, updates map[string]any) (*entity.User, error) {
	if err := s.Users.Update(userID, updates); err != nil {
		return nil, err
	}
	return s.Users.FindByID(userID)
}
