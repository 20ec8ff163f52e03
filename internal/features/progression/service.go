// Package progression — service.go содержит бизнес-логику XP-системы.
package progression

import (
	"context"
	"math/rand"
	"time"

	"ultimate-bot/internal/common"
	"ultimate-bot/internal/config"
)

// Store — операции хранилища прогресса, которые нужны сервису.
// Интерфейс позволяет тестировать логику на in-memory реализации.
type Store interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username string) error
	AddXP(ctx context.Context, userID, chatID int64, username string, amount int64) error
	GetRank(ctx context.Context, userID, chatID int64) (*Rank, error)
	GetTop(ctx context.Context, chatID int64, limit int) ([]TopEntry, error)
	GetLastDaily(ctx context.Context, userID, chatID int64) (*time.Time, bool, error)
	ClaimDaily(ctx context.Context, userID, chatID int64, username string, amount int64, today time.Time) error
	GetScopeStats(ctx context.Context, chatID int64) (*ScopeStats, error)
	ActiveScopes(ctx context.Context) ([]int64, error)
}

// Service управляет прогрессией.
type Service struct {
	store Store
	cfg   *config.Config
}

// NewService создаёт сервис прогрессии.
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// EnsureUser регистрирует пользователя в чате с нулевым XP.
func (s *Service) EnsureUser(ctx context.Context, userID, chatID int64, username string) error {
	return s.store.EnsureUser(ctx, userID, chatID, username)
}

// AddXP начисляет amount XP. Отрицательные суммы не принимаются:
// пути уменьшения XP в системе нет.
func (s *Service) AddXP(ctx context.Context, userID, chatID int64, username string, amount int64) error {
	if amount < 0 {
		return common.ErrNegativeAmount
	}
	return s.store.AddXP(ctx, userID, chatID, username, amount)
}

// GetRank возвращает снимок позиции пользователя в чате.
// common.ErrNoProgress — у пользователя ещё нет XP.
func (s *Service) GetRank(ctx context.Context, userID, chatID int64) (*Rank, error) {
	return s.store.GetRank(ctx, userID, chatID)
}

// GetTop возвращает таблицу лидеров чата.
func (s *Service) GetTop(ctx context.Context, chatID int64, limit int) ([]TopEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.GetTop(ctx, chatID, limit)
}

// CanClaimDaily — можно ли взять ежедневный бонус сегодня.
// Сравниваются календарные даты в поясе приложения, не скользящие 24 часа.
func (s *Service) CanClaimDaily(ctx context.Context, userID, chatID int64) (bool, error) {
	last, found, err := s.store.GetLastDaily(ctx, userID, chatID)
	if err != nil {
		return false, err
	}
	if !found || last == nil {
		return true, nil
	}
	today := common.Today(s.cfg.Location())
	return last.Format("2006-01-02") != today.Format("2006-01-02"), nil
}

// ClaimDaily выдаёт ежедневный бонус: случайная сумма из настроенного
// диапазона, отметка даты и начисление — одной транзакцией хранилища.
// Возвращает начисленную сумму.
func (s *Service) ClaimDaily(ctx context.Context, userID, chatID int64, username string) (int64, error) {
	amount := s.cfg.DailyBonusMin
	if spread := s.cfg.DailyBonusMax - s.cfg.DailyBonusMin; spread > 0 {
		amount += rand.Int63n(spread + 1)
	}

	today := common.Today(s.cfg.Location())
	if err := s.store.ClaimDaily(ctx, userID, chatID, username, amount, today); err != nil {
		return 0, err
	}
	return amount, nil
}

// GetScopeStats возвращает сводку по чату.
func (s *Service) GetScopeStats(ctx context.Context, chatID int64) (*ScopeStats, error) {
	return s.store.GetScopeStats(ctx, chatID)
}

// ActiveScopes возвращает чаты с хотя бы одной строкой прогресса.
func (s *Service) ActiveScopes(ctx context.Context) ([]int64, error) {
	return s.store.ActiveScopes(ctx)
}
