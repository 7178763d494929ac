package sqlite

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duelist/internal/domain"
	"duelist/internal/events"
	"duelist/internal/logging"
)

func TestJournal_Emit(t *testing.T) {
	repo := setupTestDB(t)
	journal := NewJournal(repo, 0)

	task := domain.NewTask("dishes", "wash the dishes", base, time.Hour)
	e := events.New(events.KindAlerted, task, base.Add(time.Hour))
	journal.Emit(e)

	found, err := repo.SearchEvents(context.Background(), SearchOptions{TaskName: "dishes"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	back := FromRecord(found[0])
	assert.Equal(t, e.ID, back.ID)
	assert.Equal(t, e.Kind, back.Kind)
	assert.Equal(t, e.TaskName, back.TaskName)
	assert.True(t, e.At.Equal(back.At))
	assert.True(t, task.Deadline.Equal(back.Deadline))
}

func TestJournal_ConcurrentEmit(t *testing.T) {
	repo := setupTestDB(t)
	journal := NewJournal(repo, time.Second)
	task := domain.NewTask("a", "", base, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			journal.Emit(events.New(events.KindAdded, task, base))
		}()
	}
	wg.Wait()

	all, err := repo.SearchEvents(context.Background(), SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

type failingRepository struct {
	Repository
}

func (failingRepository) CreateEvent(context.Context, *EventRecord) error {
	return errors.New("disk full")
}

func TestJournal_EmitFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.SetOutput(&buf)
	defer logging.SetOutput(prev)

	journal := NewJournal(failingRepository{}, time.Second)
	assert.NotPanics(t, func() {
		journal.Emit(events.Event{Kind: events.KindAdded, TaskName: "a"})
	})
	assert.Contains(t, buf.String(), "disk full")
}
