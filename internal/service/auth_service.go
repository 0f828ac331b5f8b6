package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"graphblog/internal/config"
	"graphblog/internal/logger"
	"graphblog/internal/models"
	"graphblog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService interface {
	CreateUser(ctx context.Context, input models.UserInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.AuthData, error)
	ParseToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	log      *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, log *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		log:      log,
	}
}

func (s *authService) CreateUser(ctx context.Context, input models.UserInput) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if err := validateInput(input); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, userExistsError()
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, NewInternalError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError(fmt.Errorf("ошибка хеширования пароля: %w", err))
	}

	user := &models.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Status:       models.DefaultUserStatus,
		PostIDs:      []string{},
	}

	err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, userExistsError()
		}
		return nil, NewInternalError(err)
	}

	s.log.Infow("Пользователь зарегистрирован", "userID", user.UserID)

	return user, nil
}

func userExistsError() *Error {
	e := NewValidationError(FieldError{Field: "email", Message: "User exists already!"})
	e.Message = "User exists already!"
	return e
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.AuthData, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewUnauthenticatedError("User not found.")
		}
		return nil, NewInternalError(err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, NewUnauthenticatedError("Password is incorrect.")
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, NewInternalError(err)
	}

	return &models.AuthData{Token: token, UserID: user.UserID}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: user.UserID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("недействительный токен")
	}

	return claims, nil
}
