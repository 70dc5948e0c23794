package domain

import (
	"context"
	"encoding/json"
	"errors"
	"path"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already exists")
)

const (
	CollectionUsers                    = "users"
	CollectionRecipes                  = "recipes"
	CollectionPendingIdentityDeletions = "pending_identity_deletions"
)

type (
	Document struct {
		ID   string          `json:"id"`
		Data json.RawMessage `json:"data"`
	}

	// DocumentStore is a collection-based store. Records are serialized as JSON
	// and stored verbatim; Delete of a missing document is not an error. Put
	// upserts, Create writes only when the id is free (ErrDocumentExists).
	DocumentStore interface {
		Put(ctx context.Context, collection, id string, record any) error
		Create(ctx context.Context, collection, id string, record any) error
		Get(ctx context.Context, collection, id string, dst any) error
		Delete(ctx context.Context, collection, id string) error
		List(ctx context.Context, collection string, limit int) ([]Document, error)
	}
)

func ItemsCollection(userID string) string {
	return path.Join(CollectionUsers, userID, "items")
}

func ScansCollection(userID string) string {
	return path.Join(CollectionUsers, userID, "scans")
}
