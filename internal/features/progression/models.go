// Package progression реализует систему опыта (XP) и уровней.
// models.go описывает структуры для хранения прогресса.
//
// XP считается отдельно для каждой пары (user_id, chat_id):
// прогресс в одном чате не виден в другом.
package progression

import "time"

// UserProgress — строка прогресса пользователя в конкретном чате.
type UserProgress struct {
	UserID     int64      `db:"user_id"`
	ChatID     int64      `db:"chat_id"`
	Username   string     `db:"username"` // последнее увиденное имя, перезаписывается при каждом апдейте
	XP         int64      `db:"xp"`
	Level      int        `db:"level"` // производное от XP, пересчитывается при каждой записи
	LastDaily  *time.Time `db:"last_daily"`
	LastActive time.Time  `db:"last_active"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// Rank — снимок позиции пользователя в чате. Не хранится, считается на лету.
type Rank struct {
	XP    int64
	Level int
	Rank  int // 1 + число пользователей чата со строго большим XP
}

// TopEntry — строка таблицы лидеров.
type TopEntry struct {
	Username string
	XP       int64
	Level    int
}

// ScopeStats — сводка по чату для /groupinfo.
type ScopeStats struct {
	Users   int
	TotalXP int64
}
