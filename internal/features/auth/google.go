package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleUser holds the identity claims extracted from a validated ID token.
type GoogleUser struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier exchanges a frontend authorization code for a verified
// Google identity.
type GoogleVerifier interface {
	Exchange(ctx context.Context, code string) (*GoogleUser, error)
}

// googleClient is the production GoogleVerifier. The redirect URI is the
// literal "postmessage" because the frontend obtains the code via the
// popup flow.
type googleClient struct {
	oauth    *oauth2.Config
	clientID string
}

func NewGoogleVerifier(clientID, clientSecret string) GoogleVerifier {
	return &googleClient{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "postmessage",
			Endpoint:     google.Endpoint,
		},
		clientID: clientID,
	}
}

func (g *googleClient) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("token response missing id_token")
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", err)
	}

	user := &GoogleUser{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		user.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		user.Picture = picture
	}

	return user, nil
}
