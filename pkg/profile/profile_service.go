package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"souschef/domain"
	"souschef/internal/utils/logger"
	"souschef/internal/utils/mailing"
	"souschef/pkg/validation"
)

type (
	ProfileService interface {
		CreateProfile(ctx context.Context, userID, email string, req domain.CreateProfileRequest) (domain.UserProfile, error)
		GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)
		CancelSetup(ctx context.Context, userID string) error
		SweepPendingDeletions(ctx context.Context) (int, error)
	}

	profileService struct {
		profileRepository ProfileRepository
		identity          domain.IdentityProvider
		validator         *validation.Validator
		mailer            mailing.Mailer
		appURL            string
		now               func() time.Time
	}
)

func NewProfileService(
	profileRepository ProfileRepository,
	identity domain.IdentityProvider,
	validator *validation.Validator,
	mailer mailing.Mailer,
	appURL string,
) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		identity:          identity,
		validator:         validator,
		mailer:            mailer,
		appURL:            appURL,
		now:               time.Now,
	}
}

// CreateProfile stores the profile once; an existing profile is never
// overwritten.
func (s *profileService) CreateProfile(ctx context.Context, userID, email string, req domain.CreateProfileRequest) (domain.UserProfile, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return domain.UserProfile{}, domain.NewValidationError("date_of_birth", domain.ErrMissingField)
	}

	profile, err := s.validator.ValidateProfile(validation.ProfileFields{
		UserID:      userID,
		Email:       email,
		FullName:    req.FullName,
		Location:    req.Location,
		DateOfBirth: dob,
	})
	if err != nil {
		return domain.UserProfile{}, err
	}

	if err := s.profileRepository.CreateProfile(ctx, profile); err != nil {
		return domain.UserProfile{}, err
	}

	if s.mailer != nil && email != "" {
		go s.sendWelcome(logger.FromContext(ctx), email, profile.FullName)
	}
	return profile, nil
}

func (s *profileService) sendWelcome(log *zap.Logger, email, name string) {
	body, err := mailing.WelcomeBody(name, s.appURL)
	if err == nil {
		err = s.mailer.SendMail(email, mailing.WelcomeSubject, body)
	}
	switch {
	case errors.Is(err, mailing.ErrMailDisabled):
		log.Debug("profile.welcome_mail_skipped")
	case err != nil:
		log.Warn("profile.welcome_mail_failed", zap.Error(err))
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	return s.profileRepository.GetProfile(ctx, userID)
}

// CancelSetup removes the profile and then the identity. When the identity
// cannot be removed the user id is queued for SweepPendingDeletions and
// ErrIdentityCleanupQueue is returned.
func (s *profileService) CancelSetup(ctx context.Context, userID string) error {
	if err := s.profileRepository.DeleteProfile(ctx, userID); err != nil {
		return err
	}

	err := s.identity.DeleteIdentity(ctx, userID)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn("profile.identity_delete_failed", zap.String("user_id", userID), zap.Error(err))
	pending := domain.PendingIdentityDeletion{
		UserID:    userID,
		Attempts:  1,
		LastError: err.Error(),
		QueuedAt:  s.now(),
	}
	if qerr := s.profileRepository.SavePendingDeletion(ctx, pending); qerr != nil {
		return fmt.Errorf("queue identity deletion: %w", qerr)
	}
	return fmt.Errorf("%w: %v", domain.ErrIdentityCleanupQueue, err)
}

// SweepPendingDeletions retries every queued identity deletion and returns how
// many were cleared. Identity deletion is idempotent, so a retry after a
// partial failure is safe.
func (s *profileService) SweepPendingDeletions(ctx context.Context) (int, error) {
	pending, err := s.profileRepository.ListPendingDeletions(ctx)
	if err != nil {
		return 0, err
	}

	log := logger.FromContext(ctx)
	cleared := 0
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return cleared, err
		}

		if err := s.identity.DeleteIdentity(ctx, p.UserID); err != nil {
			p.Attempts++
			p.LastError = err.Error()
			log.Warn("profile.identity_retry_failed",
				zap.String("user_id", p.UserID),
				zap.Int("attempts", p.Attempts),
				zap.Error(err),
			)
			if err := s.profileRepository.SavePendingDeletion(ctx, p); err != nil {
				return cleared, err
			}
			continue
		}

		if err := s.profileRepository.DeletePendingDeletion(ctx, p.UserID); err != nil {
			return cleared, err
		}
		cleared++
	}
	return cleared, nil
}
