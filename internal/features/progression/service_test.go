package progression

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ultimate-bot/internal/common"
	"ultimate-bot/internal/config"
)

// memStore — in-memory реализация Store с той же семантикой,
// что и SQL-репозиторий: суммирование XP, уровень из формулы,
// ранг = 1 + число строго больших XP.
type memStore struct {
	rows map[[2]int64]*memRow
}

type memRow struct {
	username  string
	xp        int64
	lastDaily *time.Time
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[[2]int64]*memRow)}
}

func (m *memStore) row(userID, chatID int64) *memRow {
	key := [2]int64{userID, chatID}
	if m.rows[key] == nil {
		m.rows[key] = &memRow{}
	}
	return m.rows[key]
}

func (m *memStore) EnsureUser(_ context.Context, userID, chatID int64, username string) error {
	m.row(userID, chatID).username = username
	return nil
}

func (m *memStore) AddXP(_ context.Context, userID, chatID int64, username string, amount int64) error {
	r := m.row(userID, chatID)
	r.username = username
	r.xp += amount
	return nil
}

func (m *memStore) GetRank(_ context.Context, userID, chatID int64) (*Rank, error) {
	r, ok := m.rows[[2]int64{userID, chatID}]
	if !ok {
		return nil, common.ErrNoProgress
	}
	rank := 1
	for key, other := range m.rows {
		if key[1] == chatID && other.xp > r.xp {
			rank++
		}
	}
	return &Rank{XP: r.xp, Level: LevelForXP(r.xp), Rank: rank}, nil
}

func (m *memStore) GetTop(_ context.Context, chatID int64, limit int) ([]TopEntry, error) {
	type rowWithID struct {
		userID int64
		row    *memRow
	}
	var all []rowWithID
	for key, r := range m.rows {
		if key[1] == chatID {
			all = append(all, rowWithID{key[0], r})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].row.xp != all[j].row.xp {
			return all[i].row.xp > all[j].row.xp
		}
		return all[i].userID < all[j].userID
	})
	if len(all) > limit {
		all = all[:limit]
	}
	top := make([]TopEntry, 0, len(all))
	for _, e := range all {
		top = append(top, TopEntry{Username: e.row.username, XP: e.row.xp, Level: LevelForXP(e.row.xp)})
	}
	return top, nil
}

func (m *memStore) GetLastDaily(_ context.Context, userID, chatID int64) (*time.Time, bool, error) {
	r, ok := m.rows[[2]int64{userID, chatID}]
	if !ok {
		return nil, false, nil
	}
	return r.lastDaily, true, nil
}

func (m *memStore) ClaimDaily(_ context.Context, userID, chatID int64, username string, amount int64, today time.Time) error {
	r := m.row(userID, chatID)
	if r.lastDaily != nil && r.lastDaily.Format("2006-01-02") == today.Format("2006-01-02") {
		return common.ErrDailyAlreadyClaimed
	}
	r.username = username
	r.xp += amount
	r.lastDaily = &today
	return nil
}

func (m *memStore) GetScopeStats(_ context.Context, chatID int64) (*ScopeStats, error) {
	stats := &ScopeStats{}
	for key, r := range m.rows {
		if key[1] == chatID {
			stats.Users++
			stats.TotalXP += r.xp
		}
	}
	return stats, nil
}

func (m *memStore) ActiveScopes(_ context.Context) ([]int64, error) {
	seen := map[int64]bool{}
	var chats []int64
	for key := range m.rows {
		if !seen[key[1]] {
			seen[key[1]] = true
			chats = append(chats, key[1])
		}
	}
	return chats, nil
}

func testConfig() *config.Config {
	return &config.Config{
		AppTimezone:   "UTC",
		DailyBonusMin: 10,
		DailyBonusMax: 50,
	}
}

func TestAddXPAdditivity(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, testConfig())

	require.NoError(t, svc.AddXP(ctx, 1, 100, "alice", 5))
	require.NoError(t, svc.AddXP(ctx, 1, 100, "alice", 10))
	require.NoError(t, svc.AddXP(ctx, 1, 100, "alice", 3))

	rank, err := svc.GetRank(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(18), rank.XP)
	assert.Equal(t, 1, rank.Level)
}

func TestAddXPRejectsNegative(t *testing.T) {
	svc := NewService(newMemStore(), testConfig())
	err := svc.AddXP(context.Background(), 1, 100, "alice", -1)
	assert.True(t, errors.Is(err, common.ErrNegativeAmount))
}

func TestGetRankNoProgress(t *testing.T) {
	svc := NewService(newMemStore(), testConfig())
	_, err := svc.GetRank(context.Background(), 42, 100)
	assert.True(t, errors.Is(err, common.ErrNoProgress))
}

// Равные XP делят позицию, следующий ранг перескакивает.
func TestRankTies(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, testConfig())

	require.NoError(t, svc.AddXP(ctx, 1, 100, "a", 100))
	require.NoError(t, svc.AddXP(ctx, 2, 100, "b", 50))
	require.NoError(t, svc.AddXP(ctx, 3, 100, "c", 50))
	require.NoError(t, svc.AddXP(ctx, 4, 100, "d", 10))

	wantRanks := map[int64]int{1: 1, 2: 2, 3: 2, 4: 4}
	for userID, want := range wantRanks {
		rank, err := svc.GetRank(ctx, userID, 100)
		require.NoError(t, err)
		assert.Equal(t, want, rank.Rank, "user %d", userID)
	}
}

func TestDailyClaimOncePerDay(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, testConfig())

	can, err := svc.CanClaimDaily(ctx, 1, 100)
	require.NoError(t, err)
	assert.True(t, can)

	amount, err := svc.ClaimDaily(ctx, 1, 100, "alice")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, amount, int64(10))
	assert.LessOrEqual(t, amount, int64(50))

	can, err = svc.CanClaimDaily(ctx, 1, 100)
	require.NoError(t, err)
	assert.False(t, can)

	_, err = svc.ClaimDaily(ctx, 1, 100, "alice")
	assert.True(t, errors.Is(err, common.ErrDailyAlreadyClaimed))
}

func TestDailyClaimNextDay(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, testConfig())

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	store.row(1, 100).lastDaily = &yesterday

	can, err := svc.CanClaimDaily(ctx, 1, 100)
	require.NoError(t, err)
	assert.True(t, can)
}

// Сценарий из двух пользователей: начисления, уровни, топ.
func TestTwoUserScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, testConfig())

	// Алиса наигрывает 2500 XP, Боб — 700
	require.NoError(t, svc.AddXP(ctx, 1, 100, "alice", 2500))
	require.NoError(t, svc.AddXP(ctx, 2, 100, "bob", 700))

	alice, err := svc.GetRank(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, alice.Level)
	assert.Equal(t, 1, alice.Rank)

	bob, err := svc.GetRank(ctx, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, bob.Level)
	assert.Equal(t, 2, bob.Rank)

	// В другом чате у Боба прогресса нет
	_, err = svc.GetRank(ctx, 2, 200)
	assert.True(t, errors.Is(err, common.ErrNoProgress))

	top, err := svc.GetTop(ctx, 100, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "alice", top[0].Username)
	assert.Equal(t, "bob", top[1].Username)

	stats, err := svc.GetScopeStats(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Users)
	assert.Equal(t, int64(3200), stats.TotalXP)
}
