package domain

import (
	"context"
	"errors"
	"time"
)

var (
	MessageSuccessSignUp        = "account created successfully"
	MessageSuccessSignIn        = "signed in successfully"
	MessageSuccessSignOut       = "signed out successfully"
	MessageSuccessCheckPassword = "password checked"
	MessageFailedSignUp         = "failed to create account"
	MessageFailedSignIn         = "failed to sign in"
	MessageFailedSignOut        = "failed to sign out"
	MessagePasswordPolicy       = "password does not meet requirements"

	ErrSignIn   = errors.New("sign in failed")
	ErrSignUp   = errors.New("sign up failed")
	ErrSignOut  = errors.New("sign out failed")
	ErrIdentity = errors.New("identity not found")
)

type (
	// Identity is what the identity provider hands back after authentication.
	Identity struct {
		UserID   string    `json:"user_id"`
		Email    string    `json:"email"`
		Token    string    `json:"token"`
		IssuedAt time.Time `json:"issued_at"`
	}

	// Principal is the authenticated caller of a request.
	Principal struct {
		UserID string
		Email  string
		Role   string
	}

	IdentityProvider interface {
		SignIn(ctx context.Context, email, password string) (Identity, error)
		SignUp(ctx context.Context, email, password string) (Identity, error)
		SignOut(ctx context.Context, userID string) error
		DeleteIdentity(ctx context.Context, userID string) error
	}

	CredentialsRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	CheckPasswordRequest struct {
		Password string `json:"password"`
	}
)
