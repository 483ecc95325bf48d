package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrInvalidJWTToken covers every parse, signature and expiry failure.
var ErrInvalidJWTToken = errors.New("invalid jwt token")

type authService struct {
	userRepo domain.UserRepository
	authCfg  config.AuthConfig
}

// NewAuthService creates the credential-based authentication service.
func NewAuthService(userRepo domain.UserRepository, authCfg config.AuthConfig) (domain.AuthService, error) {
	if authCfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &authService{
		userRepo: userRepo,
		authCfg:  authCfg,
	}, nil
}

// IssueToken authenticates the credentials and returns a signed access
// token. An email never seen before registers a new account with the
// supplied password, so the first login and the signup are one call.
func (s *authService) IssueToken(ctx context.Context, email, password string) (string, error) {
	appLogger := logger.Get()

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", domain.NewDatabaseError("failed to look up user", err)
	}

	passwordHash := util.HashSHA256(password)
	if user == nil {
		user = domain.NewUser(util.NewULID(), email, passwordHash)
		if err := s.userRepo.CreateUser(ctx, user); err != nil {
			return "", domain.NewDatabaseError("failed to register user", err)
		}
		appLogger.Info("Registered new user on first login",
			zap.String("userID", user.ID))
	} else if user.PasswordHash != passwordHash {
		return "", domain.NewUnauthorizedError("Invalid credentials")
	}

	return s.createJWT(user.ID)
}

func (s *authService) createJWT(userID string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.authCfg.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// VerifyToken parses an access token and returns the user id it names.
func (s *authService) VerifyToken(tokenString string) (string, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authCfg.JWTSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		} else {
			appLogger.Warn("JWT validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidJWTToken
	}
	return claims.UserID, nil
}
