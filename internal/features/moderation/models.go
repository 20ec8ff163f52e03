// Package moderation реализует модераторские команды и журнал предупреждений.
// models.go описывает структуры журнала.
//
// Журнал только пополняется: путей редактирования или удаления записей нет.
// Число предупреждений пользователя в чате — это число его записей.
package moderation

import "time"

// Warning — одна запись журнала предупреждений.
type Warning struct {
	WarnID    int64     `db:"warn_id"` // монотонный суррогатный ключ
	UserID    int64     `db:"user_id"`
	ChatID    int64     `db:"chat_id"`
	Reason    string    `db:"reason"` // свободный текст, без валидации
	AdminID   int64     `db:"admin_id"`
	CreatedAt time.Time `db:"created_at"`
}
