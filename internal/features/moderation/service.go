// Package moderation — service.go содержит логику журнала предупреждений.
package moderation

import (
	"context"
)

// Ledger — операции журнала, которые нужны сервису.
type Ledger interface {
	AddWarning(ctx context.Context, userID, chatID int64, reason string, adminID int64) error
	CountWarnings(ctx context.Context, userID, chatID int64) (int, error)
	ListWarnings(ctx context.Context, userID, chatID int64, limit int) ([]Warning, error)
}

// Service управляет журналом предупреждений.
type Service struct {
	ledger Ledger
}

// NewService создаёт сервис модерации.
func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Warn дописывает предупреждение и возвращает новое число предупреждений
// пользователя в чате.
func (s *Service) Warn(ctx context.Context, userID, chatID int64, reason string, adminID int64) (int, error) {
	if err := s.ledger.AddWarning(ctx, userID, chatID, reason, adminID); err != nil {
		return 0, err
	}
	return s.ledger.CountWarnings(ctx, userID, chatID)
}

// CountWarnings возвращает число предупреждений пользователя в чате.
func (s *Service) CountWarnings(ctx context.Context, userID, chatID int64) (int, error) {
	return s.ledger.CountWarnings(ctx, userID, chatID)
}

// ListWarnings возвращает последние предупреждения пользователя в чате.
func (s *Service) ListWarnings(ctx context.Context, userID, chatID int64, limit int) ([]Warning, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.ledger.ListWarnings(ctx, userID, chatID, limit)
}
