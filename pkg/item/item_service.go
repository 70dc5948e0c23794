package item

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"souschef/domain"
	"souschef/internal/utils/logger"
	"souschef/pkg/validation"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	warningDays = 3
)

type (
	ItemService interface {
		CreateItem(ctx context.Context, userID string, req domain.AddItemRequest) (domain.ItemResponse, error)
		GetItems(ctx context.Context, userID string, limit int) ([]domain.ItemResponse, error)
		GetItemByID(ctx context.Context, userID, id string) (domain.ItemResponse, error)
		DeleteItem(ctx context.Context, userID, id string) error
	}

	itemService struct {
		itemRepository ItemRepository
		validator      *validation.Validator
		now            func() time.Time
	}
)

func NewItemService(itemRepository ItemRepository, validator *validation.Validator) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		validator:      validator,
		now:            time.Now,
	}
}

func (s *itemService) CreateItem(ctx context.Context, userID string, req domain.AddItemRequest) (domain.ItemResponse, error) {
	expiration, err := time.ParseInLocation("2006-01-02", req.ExpirationDate, time.UTC)
	if err != nil {
		return domain.ItemResponse{}, domain.NewValidationError("expiration_date", domain.ErrMissingField)
	}

	record, err := s.validator.ValidateItem(validation.ItemFields{
		Name:           req.Name,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Price:          req.Price,
		ServingSize:    req.ServingSize,
		ServingUnit:    req.ServingUnit,
		Calories:       req.Calories,
		Protein:        req.Protein,
		Carbs:          req.Carbs,
		Fat:            req.Fat,
		Storage:        req.Storage,
		ExpirationDate: expiration,
	})
	if err != nil {
		return domain.ItemResponse{}, err
	}

	record.ID = uuid.NewString()
	if err := s.itemRepository.AddItem(ctx, userID, record); err != nil {
		return domain.ItemResponse{}, err
	}

	logger.FromContext(ctx).Info("item.created",
		zap.String("item_id", record.ID),
		zap.String("storage", string(record.Storage)),
	)
	return s.toResponse(record), nil
}

// GetItems returns the user's limit soonest-expiring items. The whole
// collection is read so the cut happens after sorting.
func (s *itemService) GetItems(ctx context.Context, userID string, limit int) ([]domain.ItemResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	records, err := s.itemRepository.GetItems(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ExpirationDate.Before(records[j].ExpirationDate)
	})
	if len(records) > limit {
		records = records[:limit]
	}

	items := make([]domain.ItemResponse, 0, len(records))
	for _, r := range records {
		items = append(items, s.toResponse(r))
	}
	return items, nil
}

func (s *itemService) GetItemByID(ctx context.Context, userID, id string) (domain.ItemResponse, error) {
	record, err := s.itemRepository.GetItemByID(ctx, userID, id)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	return s.toResponse(record), nil
}

func (s *itemService) DeleteItem(ctx context.Context, userID, id string) error {
	if _, err := s.itemRepository.GetItemByID(ctx, userID, id); err != nil {
		return err
	}
	return s.itemRepository.DeleteItem(ctx, userID, id)
}

func (s *itemService) toResponse(r domain.ItemRecord) domain.ItemResponse {
	now := s.now()
	return domain.ItemResponse{
		ID:               r.ID,
		Name:             r.Name,
		Quantity:         r.Quantity,
		Price:            r.Price,
		PerServingMacros: r.PerServingMacros,
		ServingSize:      r.ServingSize,
		ShelfLifeDays:    validation.ShelfLifeDays(now, r.ExpirationDate),
		Storage:          r.Storage,
		ExpirationDate:   r.ExpirationDate,
		Status:           determineStatus(now, r.ExpirationDate),
		CreatedAt:        r.CreatedAt,
	}
}

func determineStatus(now, expiryDate time.Time) string {
	if expiryDate.Before(now) {
		return domain.ItemStatusExpired
	}

	warningThreshold := now.AddDate(0, 0, warningDays)
	if expiryDate.Before(warningThreshold) {
		return domain.ItemStatusWarning
	}

	return domain.ItemStatusSafe
}
