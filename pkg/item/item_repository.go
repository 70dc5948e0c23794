package item

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"souschef/domain"
	"souschef/internal/utils/logger"
)

type (
	ItemRepository interface {
		AddItem(ctx context.Context, userID string, item domain.ItemRecord) error
		GetItemByID(ctx context.Context, userID, id string) (domain.ItemRecord, error)
		GetItems(ctx context.Context, userID string, limit int) ([]domain.ItemRecord, error)
		DeleteItem(ctx context.Context, userID, id string) error
	}

	itemRepository struct {
		store domain.DocumentStore
	}
)

func NewItemRepository(store domain.DocumentStore) ItemRepository {
	return &itemRepository{store: store}
}

func (r *itemRepository) AddItem(ctx context.Context, userID string, item domain.ItemRecord) error {
	return r.store.Put(ctx, domain.ItemsCollection(userID), item.ID, item)
}

func (r *itemRepository) GetItemByID(ctx context.Context, userID, id string) (domain.ItemRecord, error) {
	var item domain.ItemRecord
	if err := r.store.Get(ctx, domain.ItemsCollection(userID), id, &item); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domain.ItemRecord{}, domain.ErrItemNotFound
		}
		return domain.ItemRecord{}, err
	}
	item.ID = id
	return item, nil
}

// GetItems returns up to limit items in creation order; limit <= 0 returns all.
// Documents that no longer decode are logged and skipped.
func (r *itemRepository) GetItems(ctx context.Context, userID string, limit int) ([]domain.ItemRecord, error) {
	docs, err := r.store.List(ctx, domain.ItemsCollection(userID), limit)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ItemRecord, 0, len(docs))
	for _, doc := range docs {
		var item domain.ItemRecord
		if err := json.Unmarshal(doc.Data, &item); err != nil {
			logger.FromContext(ctx).Warn("item.skipped_malformed", zap.String("item_id", doc.ID), zap.Error(err))
			continue
		}
		item.ID = doc.ID
		items = append(items, item)
	}
	return items, nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, userID, id string) error {
	return r.store.Delete(ctx, domain.ItemsCollection(userID), id)
}
