package services

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/config"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/repositories"
	"github.com/issuetrack-api/utils"
	"gorm.io/gorm"
)

// AuthService registers users, issues tokens and turns bearer tokens into principals
type AuthService struct {
	userRepo *repositories.UserRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates an auth service signing with the configured secret
func NewAuthService(userRepo *repositories.UserRepository, cfg config.JWTConfig) *AuthService {
	hours := cfg.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(cfg.Secret),
		ttl:      time.Duration(hours) * time.Hour,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a member account and signs a token for it
func (s *AuthService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperror.InvalidInput("Email and password required")
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, apperror.InvalidInput("Password too short").WithField("password")
	}

	taken, err := s.userRepo.EmailTaken(email, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if taken {
		return nil, apperror.InvalidInput("Email already exists").WithField("email")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := models.User{Email: email, Password: hashed, Role: models.RoleMember}
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.InvalidInput("Email already exists").WithField("email")
		}
		return nil, apperror.Internal(err)
	}

	return s.respond(user)
}

// Login checks credentials and signs a token
func (s *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, apperror.Unauthenticated("Invalid credentials")
	}
	return s.respond(user)
}

func (s *AuthService) respond(user models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.GenerateToken(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &dto.AuthResponse{Token: token, User: user, ExpiresAt: expiresAt}, nil
}

// GenerateToken signs an HS256 token carrying the user's id, email and role
func (s *AuthService) GenerateToken(user models.User) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("JWT secret not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := dto.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Authenticate validates a bearer token and returns its principal. Missing,
// malformed and expired tokens all yield the same Unauthenticated failure.
// The role is taken from the claim as issued.
func (s *AuthService) Authenticate(tokenString string) (models.Principal, error) {
	unauthenticated := apperror.Unauthenticated("Authentication required")
	if tokenString == "" || len(s.secret) == 0 {
		return models.Principal{}, unauthenticated
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return models.Principal{}, unauthenticated
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || claims.UserID == "" {
		return models.Principal{}, unauthenticated
	}

	return models.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   models.Role(claims.Role),
	}, nil
}

// CurrentUser loads the stored user behind a principal
func (s *AuthService) CurrentUser(principal models.Principal) (models.User, error) {
	user, err := s.userRepo.FindByID(principal.UserID)
	if err != nil {
		return models.User{}, lookupError(err, "User not found")
	}
	return user, nil
}
