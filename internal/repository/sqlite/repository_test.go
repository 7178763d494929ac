package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "duelist/internal/errors"
)

var base = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newRecord(kind, name string, at time.Time) *EventRecord {
	return &EventRecord{
		ID:          uuid.NewString(),
		Kind:        kind,
		TaskName:    name,
		Description: name + " description",
		StartTime:   base,
		Deadline:    base.Add(time.Hour),
		OccurredAt:  at,
	}
}

func TestCreateAndSearchEvent(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	record := newRecord("alerted", "dishes", base.Add(time.Hour))
	record.Detail = "delivered"
	require.NoError(t, repo.CreateEvent(ctx, record))

	found, err := repo.SearchEvents(ctx, SearchOptions{})
	require.NoError(t, err)
	require.Len(t, found, 1)

	got := found[0]
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "alerted", got.Kind)
	assert.Equal(t, "dishes", got.TaskName)
	assert.Equal(t, "dishes description", got.Description)
	assert.Equal(t, "delivered", got.Detail)
	assert.True(t, record.StartTime.Equal(got.StartTime))
	assert.True(t, record.Deadline.Equal(got.Deadline))
	assert.True(t, record.OccurredAt.Equal(got.OccurredAt))
}

func TestCreateEvent_DuplicateID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	record := newRecord("added", "a", base)
	require.NoError(t, repo.CreateEvent(ctx, record))

	err := repo.CreateEvent(ctx, record)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func names(records []*EventRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.TaskName
	}
	return out
}

func TestSearchEvents(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEvent(ctx, newRecord("added", "dishes", base)))
	require.NoError(t, repo.CreateEvent(ctx, newRecord("added", "dishes2", base.Add(time.Minute))))
	require.NoError(t, repo.CreateEvent(ctx, newRecord("added", "homework", base.Add(2*time.Minute))))
	require.NoError(t, repo.CreateEvent(ctx, newRecord("alerted", "dishes", base.Add(time.Hour))))

	all, err := repo.SearchEvents(ctx, SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dishes", "homework", "dishes2", "dishes"}, names(all), "newest first")

	recent, err := repo.SearchEvents(ctx, SearchOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"dishes", "homework"}, names(recent))

	byName, err := repo.SearchEvents(ctx, SearchOptions{TaskName: "dishes"})
	require.NoError(t, err)
	require.Len(t, byName, 2, "the name matches exactly")
	assert.Equal(t, "alerted", byName[0].Kind)
	assert.Equal(t, "added", byName[1].Kind)

	newest, err := repo.SearchEvents(ctx, SearchOptions{TaskName: "dishes", Limit: 1})
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.Equal(t, "alerted", newest[0].Kind)

	none, err := repo.SearchEvents(ctx, SearchOptions{TaskName: "missing"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchEvents_SameInstantKeepsInsertOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEvent(ctx, newRecord("added", "a", base)))
	require.NoError(t, repo.CreateEvent(ctx, newRecord("removed", "a", base)))

	found, err := repo.SearchEvents(ctx, SearchOptions{TaskName: "a"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "removed", found[0].Kind)
}

func TestDeleteEventsBefore(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEvent(ctx, newRecord("added", "old", base)))
	require.NoError(t, repo.CreateEvent(ctx, newRecord("added", "new", base.Add(48*time.Hour))))

	removed, err := repo.DeleteEventsBefore(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := repo.SearchEvents(ctx, SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, names(remaining))

	removed, err = repo.DeleteEventsBefore(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestInMemoryDatabase(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.CreateEvent(ctx, newRecord("added", "a", base)))

	all, err := repo.SearchEvents(ctx, SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
