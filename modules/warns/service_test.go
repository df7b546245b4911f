package warns

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirajbot/siraj/core/apperr"
)

// memoryRepo is a minimal in-memory Repository for service tests.
type memoryRepo struct {
	nextID int64
	rows   map[int64]Warning
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, rows: make(map[int64]Warning)}
}

func (m *memoryRepo) Create(_ context.Context, w Warning) (int64, error) {
	w.ID = m.nextID
	m.nextID++
	m.rows[w.ID] = w
	return w.ID, nil
}

func (m *memoryRepo) CountActive(_ context.Context, chatID, userID int64) (int, error) {
	n := 0
	for _, w := range m.rows {
		if w.ChatID == chatID && w.UserID == userID && w.Status == StatusActive {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) ListUser(_ context.Context, chatID, userID int64) ([]Warning, error) {
	var out []Warning
	for _, w := range m.rows {
		if w.ChatID == chatID && w.UserID == userID && w.Status == StatusActive {
			out = append(out, w)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memoryRepo) ListChat(_ context.Context, chatID int64) ([]Warning, error) {
	var out []Warning
	for _, w := range m.rows {
		if w.ChatID == chatID && w.Status == StatusActive {
			out = append(out, w)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, chatID, id int64) (Warning, error) {
	w, ok := m.rows[id]
	if !ok || w.ChatID != chatID {
		return Warning{}, ErrNotFound
	}
	if w.Status == StatusDeleted {
		return Warning{}, ErrAlreadyDeleted
	}
	prev := w
	w.Status = StatusDeleted
	m.rows[id] = w
	return prev, nil
}

func sortNewestFirst(rows []Warning) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].WarnedAt.Equal(rows[j].WarnedAt) {
			return rows[i].WarnedAt.After(rows[j].WarnedAt)
		}
		return rows[i].ID > rows[j].ID
	})
}

func TestWarnThenList(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	w, total, err := svc.Warn(ctx, -100, 42, 7, "spam")
	require.NoError(t, err)
	assert.Equal(t, int64(1), w.ID)
	assert.Equal(t, 1, total)
	assert.Equal(t, StatusActive, w.Status)

	rows, err := svc.UserWarnings(ctx, -100, 42)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "spam", rows[0].Reason)
	assert.Equal(t, StatusActive, rows[0].Status)
}

func TestWarnDefaultsEmptyReason(t *testing.T) {
	svc := NewService(newMemoryRepo())

	w, _, err := svc.Warn(context.Background(), -100, 42, 7, "   ")
	require.NoError(t, err)
	assert.Equal(t, DefaultReason, w.Reason)
}

func TestWarnRejectsOversizedReason(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, _, err := svc.Warn(context.Background(), -100, 42, 7, strings.Repeat("x", MaxReasonLength+1))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRemoveUnknownID(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Remove(context.Background(), -100, 999)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRemoveTwice(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	w, _, err := svc.Warn(ctx, -100, 42, 7, "flood")
	require.NoError(t, err)

	prev, err := svc.Remove(ctx, -100, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "flood", prev.Reason)
	assert.Equal(t, StatusActive, prev.Status)

	_, err = svc.Remove(ctx, -100, w.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "already been deleted")
}

func TestRemoveScopedToChat(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	w, _, err := svc.Warn(ctx, -100, 42, 7, "spam")
	require.NoError(t, err)

	_, err = svc.Remove(ctx, -200, w.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestChatWarningsNewestFirst(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		tick := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return tick }
		_, _, err := svc.Warn(ctx, -100, int64(42+i), 7, "r")
		require.NoError(t, err)
	}

	rows, err := svc.ChatWarnings(ctx, -100)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].WarnedAt.After(rows[2].WarnedAt))
}
