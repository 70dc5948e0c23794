package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"souschef/domain"
)

type (
	ProfileRepository interface {
		GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)
		CreateProfile(ctx context.Context, profile domain.UserProfile) error
		DeleteProfile(ctx context.Context, userID string) error

		SavePendingDeletion(ctx context.Context, pending domain.PendingIdentityDeletion) error
		ListPendingDeletions(ctx context.Context) ([]domain.PendingIdentityDeletion, error)
		DeletePendingDeletion(ctx context.Context, userID string) error
	}

	profileRepository struct {
		store domain.DocumentStore
	}
)

func NewProfileRepository(store domain.DocumentStore) ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := r.store.Get(ctx, domain.CollectionUsers, userID, &profile); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domain.UserProfile{}, domain.ErrProfileNotFound
		}
		return domain.UserProfile{}, err
	}
	return profile, nil
}

// CreateProfile never replaces a stored profile; it returns ErrProfileExists
// instead.
func (r *profileRepository) CreateProfile(ctx context.Context, profile domain.UserProfile) error {
	err := r.store.Create(ctx, domain.CollectionUsers, profile.UserID, profile)
	if errors.Is(err, domain.ErrDocumentExists) {
		return domain.ErrProfileExists
	}
	return err
}

func (r *profileRepository) DeleteProfile(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, domain.CollectionUsers, userID)
}

func (r *profileRepository) SavePendingDeletion(ctx context.Context, pending domain.PendingIdentityDeletion) error {
	return r.store.Put(ctx, domain.CollectionPendingIdentityDeletions, pending.UserID, pending)
}

func (r *profileRepository) ListPendingDeletions(ctx context.Context) ([]domain.PendingIdentityDeletion, error) {
	docs, err := r.store.List(ctx, domain.CollectionPendingIdentityDeletions, 0)
	if err != nil {
		return nil, err
	}

	pending := make([]domain.PendingIdentityDeletion, 0, len(docs))
	for _, doc := range docs {
		var p domain.PendingIdentityDeletion
		if err := json.Unmarshal(doc.Data, &p); err != nil {
			return nil, fmt.Errorf("%w: decode pending deletion %s: %v", domain.ErrPersistence, doc.ID, err)
		}
		if p.UserID == "" {
			p.UserID = doc.ID
		}
		pending = append(pending, p)
	}
	return pending, nil
}

func (r *profileRepository) DeletePendingDeletion(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, domain.CollectionPendingIdentityDeletions, userID)
}
