package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"souschef/domain"
	"souschef/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type documentRepository struct {
	db *gorm.DB
}

var _ domain.DocumentStore = (*documentRepository)(nil)

func NewDocumentRepository(db *gorm.DB) domain.DocumentStore {
	return &documentRepository{db: db}
}

func (r *documentRepository) Put(ctx context.Context, collection, id string, record any) error {
	doc, err := newDocument(collection, id, record)
	if err != nil {
		return err
	}
	collection = doc.Collection

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(doc).Error
	if err != nil {
		return fmt.Errorf("%w: put %s/%s: %v", domain.ErrPersistence, collection, id, err)
	}
	return nil
}

// Create inserts the document in one statement, so of two concurrent creates
// for the same id exactly one wins.
func (r *documentRepository) Create(ctx context.Context, collection, id string, record any) error {
	doc, err := newDocument(collection, id, record)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(doc)
	if res.Error != nil {
		return fmt.Errorf("%w: create %s/%s: %v", domain.ErrPersistence, doc.Collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrDocumentExists
	}
	return nil
}

func newDocument(collection, id string, record any) (*entities.Document, error) {
	collection, err := normalizeCollection(collection)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty document id", domain.ErrPersistence)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s/%s: %v", domain.ErrPersistence, collection, id, err)
	}
	return &entities.Document{
		Collection: collection,
		ID:         id,
		Data:       data,
	}, nil
}

func (r *documentRepository) Get(ctx context.Context, collection, id string, dst any) error {
	collection, err := normalizeCollection(collection)
	if err != nil {
		return err
	}

	var doc entities.Document
	if err := r.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDocumentNotFound
		}
		return fmt.Errorf("%w: get %s/%s: %v", domain.ErrPersistence, collection, id, err)
	}

	if err := json.Unmarshal(doc.Data, dst); err != nil {
		return fmt.Errorf("%w: decode %s/%s: %v", domain.ErrPersistence, collection, id, err)
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, collection, id string) error {
	collection, err := normalizeCollection(collection)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&entities.Document{}).Error; err != nil {
		return fmt.Errorf("%w: delete %s/%s: %v", domain.ErrPersistence, collection, id, err)
	}
	return nil
}

// List returns documents of one collection, oldest first. A limit <= 0 means
// no limit.
func (r *documentRepository) List(ctx context.Context, collection string, limit int) ([]domain.Document, error) {
	collection, err := normalizeCollection(collection)
	if err != nil {
		return nil, err
	}

	var docs []*entities.Document
	query := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at asc").
		Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", domain.ErrPersistence, collection, err)
	}

	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.Document{
			ID:   doc.ID,
			Data: json.RawMessage(doc.Data),
		})
	}
	return out, nil
}

func normalizeCollection(collection string) (string, error) {
	collection = strings.Trim(strings.TrimSpace(collection), "/")
	if collection == "" {
		return "", fmt.Errorf("%w: empty collection path", domain.ErrPersistence)
	}
	return collection, nil
}
