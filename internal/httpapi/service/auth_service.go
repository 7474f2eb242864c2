package service

import (
	"errors"
	"time"

	"eduground/internal/config"
	"eduground/internal/httpapi/models"
	"eduground/internal/httpapi/repository"
	"eduground/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims carried by both access and refresh tokens. Type distinguishes the
// two so one can never stand in for the other.
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
	Type    string `json:"type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(email, password string) (accessToken, refreshToken string, err error)
	Login(email, password string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshTokens(refreshToken string) (newAccessToken, newRefreshToken string, err error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	VerifyCredentials(email, password string) (*models.User, error)
	GetUser(userID string) (*models.User, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,  // 1 day
		refreshTokenTTL:  cfg.RefreshTokenTTL, // 15 days
	}
}

// Register creates a user with a hashed password and returns a fresh token
// pair. New accounts are never staff.
func (s *authService) Register(email, password string) (string, string, error) {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return "", "", ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", "", err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		return "", "", err
	}

	return s.issueTokenPair(user)
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(email, password string) (string, string, *models.User, error) {
	user, err := s.VerifyCredentials(email, password)
	if err != nil {
		return "", "", nil, err
	}

	accessToken, refreshToken, err := s.issueTokenPair(user)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

// VerifyCredentials checks an email/password pair and returns the user. Also
// used by the basic-auth path of the middleware.
func (s *authService) VerifyCredentials(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// User not found; dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// RefreshTokens rotates a refresh token: the presented token is revoked and a
// fresh access/refresh pair is issued.
func (s *authService) RefreshTokens(refreshTokenString string) (string, string, error) {
	claims, err := s.parseToken(refreshTokenString)
	if err != nil {
		return "", "", err
	}
	if claims.Type != "refresh" {
		return "", "", ErrInvalidToken
	}

	stored, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if stored.Revoked {
		return "", "", ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		// Sweep every token past its expiry, not just the presented one.
		s.refreshTokenRepo.DeleteExpired()
		return "", "", ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	if err := s.refreshTokenRepo.Revoke(stored.ID); err != nil {
		return "", "", err
	}

	return s.issueTokenPair(user)
}

// ValidateAccessToken parses and verifies an access token.
func (s *authService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != "access" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUser loads a user by id, for whoami.
func (s *authService) GetUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// issueTokenPair signs an access and a refresh token. The refresh token is
// also persisted so it can be revoked on rotation.
func (s *authService) issueTokenPair(user *models.User) (string, string, error) {
	accessToken, err := s.signToken(user, "access", s.accessTokenTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.signToken(user, "refresh", s.refreshTokenTTL)
	if err != nil {
		return "", "", err
	}

	record := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(record); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *authService) signToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
