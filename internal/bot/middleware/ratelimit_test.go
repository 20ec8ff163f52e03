package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if !rl.Allow(1) {
			t.Fatalf("запрос %d не должен был блокироваться", i+1)
		}
	}
	if rl.Allow(1) {
		t.Error("четвёртый запрос в окне должен блокироваться")
	}

	// Лимит на каждого пользователя отдельно
	if !rl.Allow(2) {
		t.Error("другой пользователь не должен попадать под чужой лимит")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 30*time.Millisecond)
	defer rl.Close()

	if !rl.Allow(1) {
		t.Fatal("первый запрос должен пройти")
	}
	if rl.Allow(1) {
		t.Fatal("второй запрос сразу должен блокироваться")
	}

	time.Sleep(50 * time.Millisecond)
	if !rl.Allow(1) {
		t.Error("после окна запрос должен снова пройти")
	}
}
