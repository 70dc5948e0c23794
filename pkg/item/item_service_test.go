package item

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souschef/domain"
	"souschef/internal/testutil"
	"souschef/pkg/docstore"
	"souschef/pkg/validation"
)

var fixedNow = time.Date(2024, 11, 13, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) ItemService {
	t.Helper()
	svc, _ := newTestServiceWithStore(t)
	return svc
}

func newTestServiceWithStore(t *testing.T) (ItemService, domain.DocumentStore) {
	t.Helper()
	store := docstore.NewDocumentRepository(testutil.NewTestDB(t))
	svc := NewItemService(NewItemRepository(store), validation.NewValidator(func() time.Time { return fixedNow }))
	svc.(*itemService).now = func() time.Time { return fixedNow }
	return svc, store
}

func milk(expiration string) domain.AddItemRequest {
	return domain.AddItemRequest{
		Name:           "Milk",
		Quantity:       "1",
		Unit:           "gallon",
		Price:          "3.49",
		ServingSize:    "240",
		ServingUnit:    "ml",
		Calories:       "150",
		Protein:        "8",
		Carbs:          "12",
		Fat:            "8",
		Storage:        "fridge",
		ExpirationDate: expiration,
	}
}

func TestCreateItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, "u1", milk("2024-11-20"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.Quantity{Value: 1, Unit: domain.UnitGallons}, created.Quantity)
	assert.Equal(t, domain.StorageRefrigerator, created.Storage)
	assert.Equal(t, 6, created.ShelfLifeDays)
	assert.Equal(t, domain.ItemStatusSafe, created.Status)
	assert.Equal(t, domain.Quantity{Value: 150, Unit: domain.UnitKcal}, created.PerServingMacros[domain.MacroCalories])

	got, err := svc.GetItemByID(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Milk", got.Name)
	assert.InDelta(t, 3.49, got.Price, 1e-9)
}

func TestCreateItem_InvalidNotStored(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := milk("2024-11-20")
	req.Quantity = "zero"
	_, err := svc.CreateItem(ctx, "u1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	req = milk("20/11/2024")
	_, err = svc.CreateItem(ctx, "u1", req)
	assert.True(t, domain.IsValidationError(err))

	items, err := svc.GetItems(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetItems_SortedAndScopedToUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, "u1", milk("2024-12-01"))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, "u1", milk("2024-11-14"))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, "u1", milk("2024-11-01"))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, "u2", milk("2024-11-20"))
	require.NoError(t, err)

	items, err := svc.GetItems(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, domain.ItemStatusExpired, items[0].Status)
	assert.Equal(t, domain.ItemStatusWarning, items[1].Status)
	assert.Equal(t, domain.ItemStatusSafe, items[2].Status)

	limited, err := svc.GetItems(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDeleteItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, "u1", milk("2024-11-20"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteItem(ctx, "u2", created.ID), domain.ErrItemNotFound)
	require.NoError(t, svc.DeleteItem(ctx, "u1", created.ID))

	_, err = svc.GetItemByID(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.ErrorIs(t, svc.DeleteItem(ctx, "u1", created.ID), domain.ErrItemNotFound)
}

func TestDetermineStatus(t *testing.T) {
	assert.Equal(t, domain.ItemStatusExpired, determineStatus(fixedNow, fixedNow.Add(-time.Minute)))
	assert.Equal(t, domain.ItemStatusWarning, determineStatus(fixedNow, fixedNow.AddDate(0, 0, 2)))
	assert.Equal(t, domain.ItemStatusSafe, determineStatus(fixedNow, fixedNow.AddDate(0, 0, 3)))
}

func TestGetItems_LimitKeepsSoonestExpiring(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, exp := range []string{"2025-06-01", "2025-05-01", "2025-04-01", "2024-11-14"} {
		_, err := svc.CreateItem(ctx, "u1", milk(exp))
		require.NoError(t, err)
	}

	items, err := svc.GetItems(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-11-14", items[0].ExpirationDate.Format("2006-01-02"))
	assert.Equal(t, "2025-04-01", items[1].ExpirationDate.Format("2006-01-02"))
}

func TestGetItems_SkipsMalformedDocuments(t *testing.T) {
	svc, store := newTestServiceWithStore(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, "u1", milk("2024-12-01"))
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, domain.ItemsCollection("u1"), "broken", map[string]any{
		"name":     "Eggs",
		"quantity": "a dozen",
	}))

	items, err := svc.GetItems(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)
}
