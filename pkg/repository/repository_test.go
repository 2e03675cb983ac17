package repository

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/clinicdesk/pkg/db"
	"github.com/smallbiznis/clinicdesk/pkg/db/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	Title     string
	Body      string
	CreatedAt time.Time
}

func newNoteStore(t *testing.T) Repository[note] {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&note{}))
	return ProvideStore[note](conn)
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newNoteStore(t)

	require.NoError(t, repo.Create(ctx, &note{ID: 1, Title: "Morning", Body: "open", CreatedAt: time.Now()}))
	require.NoError(t, repo.Create(ctx, &note{ID: 2, Title: "Evening", Body: "close", CreatedAt: time.Now()}))

	found, err := repo.FindOne(ctx, &note{ID: 1})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Morning", found.Title)

	affected, err := repo.Update(ctx, 1, map[string]any{"body": "reopened"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	found, err = repo.FindOne(ctx, &note{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "reopened", found.Body)
	assert.Equal(t, "Morning", found.Title)

	items, err := repo.Find(ctx, &note{}, option.WithNameSearch("title", "EVEN"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].ID)

	count, err := repo.Count(ctx, &note{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	affected, err = repo.Delete(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	missing, err := repo.FindOne(ctx, &note{ID: 2})
	require.NoError(t, err)
	assert.Nil(t, missing)

	affected, err = repo.Delete(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}
