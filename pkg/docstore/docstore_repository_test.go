package docstore

import (
	"context"
	"testing"

	"souschef/domain"
	"souschef/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

func TestDocumentRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentRepository(testutil.NewTestDB(t))

	require.NoError(t, store.Put(ctx, "users/u1/items", "a", note{Title: "milk", Score: 1.5}))

	var got note
	require.NoError(t, store.Get(ctx, "users/u1/items", "a", &got))
	assert.Equal(t, note{Title: "milk", Score: 1.5}, got)
}

func TestDocumentRepository_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentRepository(testutil.NewTestDB(t))

	require.NoError(t, store.Put(ctx, "recipes", "r1", note{Title: "old"}))
	require.NoError(t, store.Put(ctx, "recipes", "r1", note{Title: "new"}))

	var got note
	require.NoError(t, store.Get(ctx, "recipes", "r1", &got))
	assert.Equal(t, "new", got.Title)

	docs, err := store.List(ctx, "recipes", 0)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocumentRepository_GetMissing(t *testing.T) {
	store := NewDocumentRepository(testutil.NewTestDB(t))

	var got note
	err := store.Get(context.Background(), "recipes", "nope", &got)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestDocumentRepository_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentRepository(testutil.NewTestDB(t))

	require.NoError(t, store.Put(ctx, "users", "u1", note{Title: "x"}))
	require.NoError(t, store.Delete(ctx, "users", "u1"))
	require.NoError(t, store.Delete(ctx, "users", "u1"))

	var got note
	assert.ErrorIs(t, store.Get(ctx, "users", "u1", &got), domain.ErrDocumentNotFound)
}

func TestDocumentRepository_ListScopesAndLimits(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentRepository(testutil.NewTestDB(t))

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Put(ctx, "users/u1/items", id, note{Title: id}))
	}
	require.NoError(t, store.Put(ctx, "users/u2/items", "z", note{Title: "z"}))

	docs, err := store.List(ctx, "/users/u1/items/", 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	all, err := store.List(ctx, "users/u1/items", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, doc := range all {
		assert.NotEqual(t, "z", doc.ID)
	}
}

func TestDocumentRepository_RejectsEmptyPath(t *testing.T) {
	store := NewDocumentRepository(testutil.NewTestDB(t))

	err := store.Put(context.Background(), " / ", "a", note{})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestDocumentRepository_CreateOnlyOnce(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentRepository(testutil.NewTestDB(t))

	require.NoError(t, store.Create(ctx, "users", "u1", note{Title: "first"}))
	assert.ErrorIs(t, store.Create(ctx, "users", "u1", note{Title: "second"}), domain.ErrDocumentExists)

	var got note
	require.NoError(t, store.Get(ctx, "users", "u1", &got))
	assert.Equal(t, "first", got.Title)

	// other collections keep their own ids
	require.NoError(t, store.Create(ctx, "recipes", "u1", note{Title: "other"}))
}
