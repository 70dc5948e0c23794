package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateProfile = "profile created successfully"
	MessageSuccessGetProfile    = "profile retrieved successfully"
	MessageSuccessCancelSetup   = "profile setup cancelled and account deleted"
	MessageFailedCreateProfile  = "failed to save profile. please try again"
	MessageFailedGetProfile     = "failed to retrieve profile"
	MessageFailedCancelSetup    = "failed to cancel profile setup"

	ErrProfileExists        = errors.New("profile already exists")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrIdentityCleanupQueue = errors.New("identity deletion deferred")
)

type (
	UserProfile struct {
		UserID      string    `json:"userId"`
		Email       string    `json:"email"`
		FullName    string    `json:"fullName"`
		DateOfBirth time.Time `json:"dateOfBirth"`
		Location    string    `json:"location"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	CreateProfileRequest struct {
		FullName    string `json:"full_name"`
		DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
		Location    string `json:"location"`
	}

	// PendingIdentityDeletion records a profile whose identity could not be
	// removed during setup cancellation.
	PendingIdentityDeletion struct {
		UserID    string    `json:"userId"`
		Attempts  int       `json:"attempts"`
		LastError string    `json:"lastError"`
		QueuedAt  time.Time `json:"queuedAt"`
	}
)
