// Package progression — repository.go выполняет операции с таблицей users.
//
// Начисление XP — один UPSERT-стейтмент: xp и level обновляются вместе,
// поэтому конкурентные начисления безопасны на уровне атомарности стейтмента
// и уровень никогда не читается рассогласованным с XP.
package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ultimate-bot/internal/common"
)

// Repository предоставляет методы для работы с таблицей users.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий прогрессии.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureUser создаёт нулевую строку прогресса, если её нет.
// Идемпотентно: XP существующей строки не трогаем, имя обновляем всегда.
func (r *Repository) EnsureUser(ctx context.Context, userID, chatID int64, username string) error {
	query := `
		INSERT INTO users (user_id, chat_id, username, xp, level, last_active)
		VALUES ($1, $2, $3, 0, 1, NOW())
		ON CONFLICT (user_id, chat_id) DO UPDATE
		SET username = EXCLUDED.username, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, userID, chatID, username)
	if err != nil {
		return fmt.Errorf("ошибка создания прогресса: %w", err)
	}
	return nil
}

// AddXP начисляет XP одним стейтментом. Если строки нет — создаёт с xp = amount.
// level пересчитывается в том же стейтменте по формуле xp/1000 + 1.
func (r *Repository) AddXP(ctx context.Context, userID, chatID int64, username string, amount int64) error {
	query := `
		INSERT INTO users (user_id, chat_id, username, xp, level, last_active)
		VALUES ($1, $2, $3, $4, $4 / 1000 + 1, NOW())
		ON CONFLICT (user_id, chat_id) DO UPDATE
		SET xp = users.xp + EXCLUDED.xp,
		    level = (users.xp + EXCLUDED.xp) / 1000 + 1,
		    username = EXCLUDED.username,
		    last_active = NOW(),
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, userID, chatID, username, amount)
	if err != nil {
		return fmt.Errorf("ошибка начисления XP: %w", err)
	}
	return nil
}

// GetRank возвращает (xp, level, rank) пользователя в чате.
// Отсутствие строки — common.ErrNoProgress, а не сбой.
func (r *Repository) GetRank(ctx context.Context, userID, chatID int64) (*Rank, error) {
	var rank Rank
	err := r.db.QueryRow(ctx,
		`SELECT xp, level FROM users WHERE user_id = $1 AND chat_id = $2`,
		userID, chatID,
	).Scan(&rank.XP, &rank.Level)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNoProgress
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения прогресса: %w", err)
	}

	// Ранг = 1 + число строк чата со строго большим XP.
	// Полный проход по строкам чата — приемлемо: масштаб группы, не глобальной базы.
	var greater int
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE chat_id = $1 AND xp > $2`,
		chatID, rank.XP,
	).Scan(&greater)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта ранга: %w", err)
	}

	rank.Rank = greater + 1
	return &rank, nil
}

// GetTop возвращает топ пользователей чата по убыванию XP.
// Вторичный ключ user_id ASC даёт детерминированный порядок при равном XP.
func (r *Repository) GetTop(ctx context.Context, chatID int64, limit int) ([]TopEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT username, xp, level FROM users
		WHERE chat_id = $1
		ORDER BY xp DESC, user_id ASC
		LIMIT $2
	`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения топа: %w", err)
	}
	defer rows.Close()

	var top []TopEntry
	for rows.Next() {
		var e TopEntry
		if err := rows.Scan(&e.Username, &e.XP, &e.Level); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		top = append(top, e)
	}
	return top, rows.Err()
}

// GetLastDaily возвращает дату последнего ежедневного бонуса.
// (nil, false, nil) — строки нет вообще; (nil, true, nil) — строка есть, бонус не брали.
func (r *Repository) GetLastDaily(ctx context.Context, userID, chatID int64) (*time.Time, bool, error) {
	var last *time.Time
	err := r.db.QueryRow(ctx,
		`SELECT last_daily FROM users WHERE user_id = $1 AND chat_id = $2`,
		userID, chatID,
	).Scan(&last)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения last_daily: %w", err)
	}
	return last, true, nil
}

// ClaimDaily — отметка бонуса и начисление XP в одной транзакции.
// Строка получателя блокируется FOR UPDATE, поэтому двойной /daily
// в один день невозможен даже при конкурентных командах.
func (r *Repository) ClaimDaily(ctx context.Context, userID, chatID int64, username string, amount int64, today time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var last *time.Time
	err = tx.QueryRow(ctx,
		`SELECT last_daily FROM users WHERE user_id = $1 AND chat_id = $2 FOR UPDATE`,
		userID, chatID,
	).Scan(&last)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Первый контакт с ботом — сразу создаём строку с бонусом
		_, err = tx.Exec(ctx, `
			INSERT INTO users (user_id, chat_id, username, xp, level, last_daily, last_active)
			VALUES ($1, $2, $3, $4, $4 / 1000 + 1, $5, NOW())
		`, userID, chatID, username, amount, today)
		if err != nil {
			return fmt.Errorf("ошибка создания строки бонуса: %w", err)
		}

	case err != nil:
		return fmt.Errorf("ошибка чтения last_daily: %w", err)

	default:
		if last != nil && sameDay(*last, today) {
			return common.ErrDailyAlreadyClaimed
		}
		_, err = tx.Exec(ctx, `
			UPDATE users
			SET xp = xp + $3,
			    level = (xp + $3) / 1000 + 1,
			    username = $4,
			    last_daily = $5,
			    last_active = NOW(),
			    updated_at = NOW()
			WHERE user_id = $1 AND chat_id = $2
		`, userID, chatID, amount, username, today)
		if err != nil {
			return fmt.Errorf("ошибка начисления бонуса: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetScopeStats возвращает сводку по чату: число пользователей и суммарный XP.
func (r *Repository) GetScopeStats(ctx context.Context, chatID int64) (*ScopeStats, error) {
	var stats ScopeStats
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(xp), 0) FROM users WHERE chat_id = $1`,
		chatID,
	).Scan(&stats.Users, &stats.TotalXP)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сводки чата: %w", err)
	}
	return &stats, nil
}

// ActiveScopes возвращает все чаты, где есть хотя бы одна строка прогресса.
// Используется планировщиком ежедневного дайджеста.
func (r *Repository) ActiveScopes(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT chat_id FROM users ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка чатов: %w", err)
	}
	defer rows.Close()

	var chats []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		chats = append(chats, id)
	}
	return chats, rows.Err()
}

// sameDay сравнивает номинальные календарные даты.
// last_daily хранится как DATE (полночь UTC), today приходит полуночью
// прикладного пояса — сравниваем дату каждого значения в его собственном поясе.
func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
