// Package moderation — repository.go выполняет операции с таблицей warns.
package moderation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с таблицей warns.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий журнала предупреждений.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// AddWarning дописывает запись с серверной отметкой времени.
func (r *Repository) AddWarning(ctx context.Context, userID, chatID int64, reason string, adminID int64) error {
	query := `INSERT INTO warns (user_id, chat_id, reason, admin_id) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, userID, chatID, reason, adminID)
	if err != nil {
		return fmt.Errorf("ошибка записи предупреждения: %w", err)
	}
	return nil
}

// CountWarnings возвращает число предупреждений пользователя в чате.
func (r *Repository) CountWarnings(ctx context.Context, userID, chatID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM warns WHERE user_id = $1 AND chat_id = $2`,
		userID, chatID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта предупреждений: %w", err)
	}
	return count, nil
}

// ListWarnings возвращает последние предупреждения пользователя в чате.
func (r *Repository) ListWarnings(ctx context.Context, userID, chatID int64, limit int) ([]Warning, error) {
	rows, err := r.db.Query(ctx, `
		SELECT warn_id, user_id, chat_id, reason, admin_id, created_at
		FROM warns
		WHERE user_id = $1 AND chat_id = $2
		ORDER BY warn_id DESC
		LIMIT $3
	`, userID, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения предупреждений: %w", err)
	}
	defer rows.Close()

	var warnings []Warning
	for rows.Next() {
		var w Warning
		if err := rows.Scan(&w.WarnID, &w.UserID, &w.ChatID, &w.Reason, &w.AdminID, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}
