package cards

import (
	"bytes"
	"image/png"
	"testing"
	"time"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(time.UTC)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func decodePNG(t *testing.T, data []byte) (w, h int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("результат не декодируется как PNG: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRankCardDimensions(t *testing.T) {
	r := newTestRenderer(t)

	data, err := r.RankCard(RankCardInput{
		Username: "alice",
		XP:       2500,
		Level:    3,
		Rank:     1,
	})
	if err != nil {
		t.Fatalf("RankCard: %v", err)
	}

	w, h := decodePNG(t, data)
	if w != 800 || h != 250 {
		t.Errorf("размер карточки %dx%d, ожидалось 800x250", w, h)
	}
}

func TestLeaderboardCardGrowsWithRows(t *testing.T) {
	r := newTestRenderer(t)

	entries := []LeaderboardEntry{
		{Username: "alice", XP: 2500, Level: 3},
		{Username: "bob", XP: 700, Level: 1},
		{Username: "carol", XP: 700, Level: 1},
	}
	data, err := r.LeaderboardCard(entries, "🏆 LEADERBOARD")
	if err != nil {
		t.Fatalf("LeaderboardCard: %v", err)
	}

	w, h := decodePNG(t, data)
	if w != 800 || h != 100+70*len(entries) {
		t.Errorf("размер карточки %dx%d, ожидалось 800x%d", w, h, 100+70*len(entries))
	}
}

// Пустой список — валидная карточка только с заголовком, не ошибка.
func TestLeaderboardCardEmpty(t *testing.T) {
	r := newTestRenderer(t)

	data, err := r.LeaderboardCard(nil, "🏆 LEADERBOARD")
	if err != nil {
		t.Fatalf("LeaderboardCard(nil): %v", err)
	}

	w, h := decodePNG(t, data)
	if w != 800 || h != 100 {
		t.Errorf("размер карточки %dx%d, ожидалось 800x100", w, h)
	}
}

func TestWarningCardDimensions(t *testing.T) {
	r := newTestRenderer(t)

	data, err := r.WarningCard("bob", "посторонние ссылки в чате и очень длинная причина, которая должна переноситься", 2, 3)
	if err != nil {
		t.Fatalf("WarningCard: %v", err)
	}

	w, h := decodePNG(t, data)
	if w != 700 || h != 300 {
		t.Errorf("размер карточки %dx%d, ожидалось 700x300", w, h)
	}
}

func TestBanNoticeDimensions(t *testing.T) {
	r := newTestRenderer(t)

	data, err := r.BanNotice("bob", "spam", "alice")
	if err != nil {
		t.Fatalf("BanNotice: %v", err)
	}

	w, h := decodePNG(t, data)
	if w != 700 || h != 350 {
		t.Errorf("размер карточки %dx%d, ожидалось 700x350", w, h)
	}
}
