package services

import (
	"time"

	"sikkerchat/config"
	"sikkerchat/models"
	"sikkerchat/repository"
	"sikkerchat/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  repository.UserRepository
	config *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: userRepo, config: cfg}
}

func (s *AuthService) Register(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingField
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	// only the hash is kept; the plaintext is dropped here
	return s.users.Create(username, string(hashed))
}

func (s *AuthService) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingField
	}

	// unknown user and wrong password are deliberately indistinguishable
	u, err := s.users.FindByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(u.Username)
}

func (s *AuthService) IssueToken(username string) (string, error) {
	ttl := time.Duration(s.config.TokenTTL) * time.Second
	return utils.GenerateJWT(s.config.JWTSecret, username, ttl)
}

func (s *AuthService) VerifyToken(token string) (string, error) {
	username, err := utils.ParseJWT(s.config.JWTSecret, token)
	if err != nil {
		return "", ErrUnauthorized
	}
	return username, nil
}
