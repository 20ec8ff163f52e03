// Package admin — service.go: кто имеет право на модераторские команды.
//
// Права даёт либо статический список ADMIN_IDS из конфига, либо живая
// сессия после /login с паролем (argon2id). Сессии держим только в памяти:
// это временное повышение прав, не долговременное состояние.
package admin

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"ultimate-bot/internal/common"
	"ultimate-bot/internal/config"
)

const (
	sessionTTL     = 24 * time.Hour
	maxAttempts    = 3
	attemptsWindow = 1 * time.Hour
)

// Service управляет правами администраторов.
type Service struct {
	cfg *config.Config

	mu       sync.RWMutex
	static   map[int64]struct{}    // из ADMIN_IDS
	sessions map[int64]time.Time   // userID → истечение сессии
	attempts map[int64][]time.Time // неудачные попытки входа
}

// NewService создаёт сервис администраторов.
func NewService(cfg *config.Config) *Service {
	static := make(map[int64]struct{}, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		static[id] = struct{}{}
	}
	return &Service{
		cfg:      cfg,
		static:   static,
		sessions: make(map[int64]time.Time),
		attempts: make(map[int64][]time.Time),
	}
}

// IsAdmin отвечает, есть ли у пользователя права администратора.
func (s *Service) IsAdmin(userID int64) bool {
	if _, ok := s.static[userID]; ok {
		return true
	}

	s.mu.RLock()
	expires, ok := s.sessions[userID]
	s.mu.RUnlock()
	return ok && time.Now().Before(expires)
}

// Login проверяет пароль и открывает сессию на 24 часа.
// После трёх неудачных попыток — блокировка на час.
func (s *Service) Login(userID int64, password string) error {
	if s.cfg.AdminPasswordHash == "" {
		return common.ErrLoginDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Чистим устаревшие попытки и считаем свежие
	cutoff := time.Now().Add(-attemptsWindow)
	var recent []time.Time
	for _, t := range s.attempts[userID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	s.attempts[userID] = recent

	if len(recent) >= maxAttempts {
		return common.ErrTooManyAttempts
	}

	if !verifyArgon2id(password, s.cfg.AdminPasswordHash) {
		s.attempts[userID] = append(recent, time.Now())
		log.WithField("user_id", userID).Warn("Неудачная попытка входа в админку")
		return common.ErrWrongPassword
	}

	delete(s.attempts, userID)
	s.sessions[userID] = time.Now().Add(sessionTTL)
	log.WithField("user_id", userID).Info("Открыта админ-сессия")
	return nil
}

// Logout закрывает сессию пользователя.
func (s *Service) Logout(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
