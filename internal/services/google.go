package services

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleUser is the subset of Google ID token claims the sign-in flow uses
type GoogleUser struct {
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}

// GoogleVerifier validates a Google ID token and extracts its claims
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleUser, error)
}

// GoogleIDTokenVerifier verifies tokens against Google's public keys
type GoogleIDTokenVerifier struct {
	// Audience restricts accepted tokens to one OAuth client ID.
	// Empty skips the audience check.
	Audience string
}

// NewGoogleIDTokenVerifier creates a new GoogleIDTokenVerifier
func NewGoogleIDTokenVerifier(audience string) *GoogleIDTokenVerifier {
	return &GoogleIDTokenVerifier{Audience: audience}
}

func (v *GoogleIDTokenVerifier) Verify(ctx context.Context, token string) (*GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, token, v.Audience)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", err)
	}

	user := &GoogleUser{}
	if email, ok := payload.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := payload.Claims["given_name"].(string); ok {
		user.GivenName = name
	}
	if name, ok := payload.Claims["family_name"].(string); ok {
		user.FamilyName = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		user.Picture = picture
	}
	if user.Email == "" {
		return nil, fmt.Errorf("google token carries no email claim")
	}
	return user, nil
}
