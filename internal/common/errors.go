// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки прогрессии (XP, уровни, ежедневный бонус)
var (
	// ErrNoProgress — у пользователя ещё нет строки XP в этом чате.
	// Это не сбой, а штатный «нет данных»: обработчик отвечает "no XP yet".
	ErrNoProgress = errors.New("запись прогресса не найдена")
	// ErrDailyAlreadyClaimed — ежедневный бонус сегодня уже получен
	ErrDailyAlreadyClaimed = errors.New("ежедневный бонус сегодня уже получен")
	// ErrNegativeAmount — начисление XP не может быть отрицательным
	ErrNegativeAmount = errors.New("сумма XP должна быть неотрицательной")
)

// Ошибки входа в админку
var (
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrLoginDisabled — ADMIN_PASSWORD_HASH не задан, вход по паролю выключен
	ErrLoginDisabled = errors.New("вход по паролю отключён")
)
