package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLedger — append-only журнал в памяти для тестов сервиса.
type memLedger struct {
	warnings []Warning
	nextID   int64
}

func (m *memLedger) AddWarning(_ context.Context, userID, chatID int64, reason string, adminID int64) error {
	m.nextID++
	m.warnings = append(m.warnings, Warning{
		WarnID:    m.nextID,
		UserID:    userID,
		ChatID:    chatID,
		Reason:    reason,
		AdminID:   adminID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (m *memLedger) CountWarnings(_ context.Context, userID, chatID int64) (int, error) {
	count := 0
	for _, w := range m.warnings {
		if w.UserID == userID && w.ChatID == chatID {
			count++
		}
	}
	return count, nil
}

func (m *memLedger) ListWarnings(_ context.Context, userID, chatID int64, limit int) ([]Warning, error) {
	var out []Warning
	for i := len(m.warnings) - 1; i >= 0 && len(out) < limit; i-- {
		w := m.warnings[i]
		if w.UserID == userID && w.ChatID == chatID {
			out = append(out, w)
		}
	}
	return out, nil
}

func TestWarnAccumulatesPerScope(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memLedger{})

	for i, want := range []int{1, 2, 3} {
		count, err := svc.Warn(ctx, 1, 100, "spam", 99)
		require.NoError(t, err, "warn %d", i+1)
		assert.Equal(t, want, count)
	}

	// Другой чат — отдельный счёт
	count, err := svc.CountWarnings(ctx, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Другой пользователь в том же чате
	count, err = svc.CountWarnings(ctx, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestListWarningsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memLedger{})

	reasons := []string{"first", "second", "third"}
	for _, r := range reasons {
		_, err := svc.Warn(ctx, 1, 100, r, 99)
		require.NoError(t, err)
	}

	list, err := svc.ListWarnings(ctx, 1, 100, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "third", list[0].Reason)
	assert.Equal(t, "second", list[1].Reason)
}

func TestListWarningsDefaultLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memLedger{})

	for i := 0; i < 8; i++ {
		_, err := svc.Warn(ctx, 1, 100, "spam", 99)
		require.NoError(t, err)
	}

	list, err := svc.ListWarnings(ctx, 1, 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}
