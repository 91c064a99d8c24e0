// Package services contains the application services of the notes client.
// This file defines the authentication service: requesting and redeeming
// one-time passcodes, and reading display hints out of issued tokens.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/noteapp/internal/client/client"
	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService defines the OTP operations used by the entry flows.
//
// Contract:
//   - RequestOTP: validate the email locally, then ask the server to send a
//     code. Returns the server's confirmation message (may be empty).
//   - VerifyOTP: validate email and code locally, then redeem the code.
//
// Validation failures wrap ErrValidation and never reach the network.
type AuthService interface {
	RequestOTP(ctx context.Context, req models.OTPRequest) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (models.VerifyResponse, error)
}

type authService struct {
	client client.Client
}

func NewAuthService(client client.Client) AuthService {
	return &authService{client: client}
}

func (a *authService) RequestOTP(ctx context.Context, req models.OTPRequest) (string, error) {
	if err := Validate(req); err != nil {
		return "", err
	}

	resp, err := a.client.RequestOTP(ctx, req)
	if err != nil {
		return "", fmt.Errorf("request otp: %w", err)
	}
	return resp.Message, nil
}

func (a *authService) VerifyOTP(ctx context.Context, email, code string) (models.VerifyResponse, error) {
	req := models.VerifyRequest{Email: email, Code: code}
	if err := Validate(req); err != nil {
		return models.VerifyResponse{}, err
	}

	resp, err := a.client.VerifyOTP(ctx, req)
	if err != nil {
		return models.VerifyResponse{}, fmt.Errorf("verify otp: %w", err)
	}
	return resp, nil
}

// DecodeClaims reads profile hints from token without verifying its
// signature. The result is for display only.
func DecodeClaims(token string) (models.UserProfile, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	p := models.UserProfile{
		Name:        stringClaim(claims, "name"),
		Email:       stringClaim(claims, "email"),
		DateOfBirth: stringClaim(claims, "dob"),
		UserID:      stringClaim(claims, "userId"),
	}
	if p.UserID == "" {
		p.UserID = stringClaim(claims, "sub")
	}
	return p, nil
}

func stringClaim(c jwt.MapClaims, key string) string {
	switch v := c[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
