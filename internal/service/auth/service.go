package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tracklite/timeclock-backend-go/internal/domain/auth"
	"github.com/tracklite/timeclock-backend-go/internal/domain/user"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/authz"
	jwtService "github.com/tracklite/timeclock-backend-go/internal/pkg/jwt"
	"github.com/tracklite/timeclock-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwtService.Service
	postgresql.JWTRepository
	policy authz.Policy
}

func NewAuthService(userRepository user.UserRepository, jwtSvc jwtService.Service, jwtRepository postgresql.JWTRepository, policy authz.Policy) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtSvc,
		JWTRepository:  jwtRepository,
		policy:         policy,
	}
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleID string, email string, name string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	stored, err := a.UserRepository.UpsertByGoogleID(ctx, user.User{
		GoogleID: googleID,
		Email:    email,
		Name:     name,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to upsert user on login: %w", err)
	}

	return a.issueTokens(ctx, stored, session)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	isAdmin := a.policy.IsAdmin(u.ID)

	accessToken, accessExpiresAt, err := a.Service.GenerateAccessToken(u.ID, u.Email, u.DisplayName(), isAdmin)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.Service.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := a.JWTRepository.CreateRefreshToken(ctx, u.ID, refreshToken, refreshExpiresAt, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.decodeRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	active, err := a.JWTRepository.IsRefreshTokenActive(ctx, userID, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !active {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	u, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	// Rotation: the old token is revoked before the new pair is issued.
	if err := a.JWTRepository.RevokeRefreshToken(ctx, userID, refreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return a.issueTokens(ctx, u, auth.SessionTrackingRequest{})
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	userID, err := a.decodeRefreshToken(refreshToken)
	if err != nil {
		return err
	}

	a.Service.RevokeToken(refreshToken)
	return a.JWTRepository.RevokeRefreshToken(ctx, userID, refreshToken)
}

// Viewer implements auth.AuthService.
func (a *AuthServiceImpl) Viewer(ctx context.Context) (auth.ViewerResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.ViewerResponse{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.ViewerResponse{}, auth.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return auth.ViewerResponse{
		UserID:  userID,
		Email:   email,
		Name:    name,
		IsAdmin: a.policy.IsAdmin(userID),
	}, nil
}

// decodeRefreshToken validates the refresh JWT and extracts the user ID.
func (a *AuthServiceImpl) decodeRefreshToken(refreshToken string) (string, error) {
	token, err := a.Service.JWTAuth().Decode(refreshToken)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return "", auth.ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}

	return userID, nil
}
