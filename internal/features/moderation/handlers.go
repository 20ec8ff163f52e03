// Package moderation — handlers.go обрабатывает /warn, /warns, /ban,
// /mute, /kick и /purge.
//
// Проверка прав выполняется ДО любой мутации: не-админ получает отказ,
// журнал и Telegram API не трогаются. Внешние вызовы (бан, мут, удаление)
// выполняются ровно один раз; их сбой превращается в уведомление об ошибке.
package moderation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"ultimate-bot/internal/cards"
	"ultimate-bot/internal/config"
)

// AdminChecker отвечает, является ли пользователь администратором бота.
type AdminChecker interface {
	IsAdmin(userID int64) bool
}

// Handler обрабатывает модераторские команды.
type Handler struct {
	service  *Service
	admins   AdminChecker
	bot      *tgbotapi.BotAPI
	renderer *cards.Renderer
	cfg      *config.Config
}

// NewHandler создаёт обработчик модерации.
func NewHandler(service *Service, admins AdminChecker, bot *tgbotapi.BotAPI, renderer *cards.Renderer, cfg *config.Config) *Handler {
	return &Handler{service: service, admins: admins, bot: bot, renderer: renderer, cfg: cfg}
}

// requireAdminAndTarget — общая преамбула модераторских команд:
// сначала права, затем цель через reply. Возвращает nil, если что-то не так
// (пользователю уже отправлен отказ).
func (h *Handler) requireAdminAndTarget(msg *tgbotapi.Message, action string) *tgbotapi.User {
	if !h.admins.IsAdmin(msg.From.ID) {
		h.sendMessage(msg.Chat.ID, "⚠️ You need admin privileges for this command!")
		return nil
	}
	if msg.ReplyToMessage == nil || msg.ReplyToMessage.From == nil {
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("⚠️ Please reply to the user you want to %s!", action))
		return nil
	}
	return msg.ReplyToMessage.From
}

// HandleWarn — команда /warn: запись в журнал + карточка предупреждения.
func (h *Handler) HandleWarn(ctx context.Context, msg *tgbotapi.Message, args []string) {
	target := h.requireAdminAndTarget(msg, "warn")
	if target == nil {
		return
	}

	reason := strings.Join(args, " ")
	if reason == "" {
		reason = "No reason provided"
	}

	count, err := h.service.Warn(ctx, target.ID, msg.Chat.ID, reason, msg.From.ID)
	if err != nil {
		log.WithError(err).Error("Ошибка записи предупреждения")
		h.sendMessage(msg.Chat.ID, "❌ Failed to record the warning, try again later.")
		return
	}

	png, renderErr := h.renderer.WarningCard(target.FirstName, reason, count, h.cfg.MaxWarnings)
	if renderErr != nil {
		log.WithError(renderErr).Error("Ошибка рендера карточки предупреждения")
		h.sendMessage(msg.Chat.ID, fmt.Sprintf(
			"⚠️ *Warning Issued*\n\nUser: %s\nReason: %s\nWarnings: %d/%d",
			target.FirstName, reason, count, h.cfg.MaxWarnings,
		))
		return
	}
	h.sendPhoto(msg.Chat.ID, "warn.png", png)
}

// HandleWarns — команда /warns: последние предупреждения цели (reply) или свои.
func (h *Handler) HandleWarns(ctx context.Context, msg *tgbotapi.Message) {
	target := msg.From
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		target = msg.ReplyToMessage.From
	}

	warnings, err := h.service.ListWarnings(ctx, target.ID, msg.Chat.ID, 5)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения предупреждений")
		h.sendMessage(msg.Chat.ID, "❌ Failed to fetch warnings.")
		return
	}
	if len(warnings) == 0 {
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ %s has no warnings in this chat.", target.FirstName))
		return
	}

	text := fmt.Sprintf("⚠️ *Warnings for %s* (%d/%d)\n\n", target.FirstName, len(warnings), h.cfg.MaxWarnings)
	for _, w := range warnings {
		text += fmt.Sprintf("• %s\n", w.Reason)
	}
	h.sendMessage(msg.Chat.ID, text)
}

// HandleBan — команда /ban: бан через Telegram API + карточка бана.
func (h *Handler) HandleBan(ctx context.Context, msg *tgbotapi.Message, args []string) {
	target := h.requireAdminAndTarget(msg, "ban")
	if target == nil {
		return
	}

	reason := strings.Join(args, " ")
	if reason == "" {
		reason = "No reason provided"
	}

	_, err := h.bot.Request(tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: msg.Chat.ID, UserID: target.ID},
	})
	if err != nil {
		log.WithError(err).WithField("target_id", target.ID).Error("Ошибка бана")
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("❌ Failed to ban user: %s", err))
		return
	}

	png, renderErr := h.renderer.BanNotice(target.FirstName, reason, msg.From.FirstName)
	if renderErr != nil {
		log.WithError(renderErr).Error("Ошибка рендера карточки бана")
		h.sendMessage(msg.Chat.ID, fmt.Sprintf(
			"🔨 *User Banned*\n\nUser: %s\nReason: %s\nBy: %s",
			target.FirstName, reason, msg.From.FirstName,
		))
		return
	}
	h.sendPhoto(msg.Chat.ID, "ban.png", png)
}

// HandleMute — команда /mute: ограничение на отправку сообщений.
// Длительность в минутах — первый аргумент, иначе дефолт из конфига.
func (h *Handler) HandleMute(ctx context.Context, msg *tgbotapi.Message, args []string) {
	target := h.requireAdminAndTarget(msg, "mute")
	if target == nil {
		return
	}

	minutes := h.cfg.MuteDefaultMinutes
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
			minutes = v
		}
	}

	_, err := h.bot.Request(tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: msg.Chat.ID, UserID: target.ID},
		UntilDate:        time.Now().Add(time.Duration(minutes) * time.Minute).Unix(),
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages:       false,
			CanSendMediaMessages:  false,
			CanSendOtherMessages:  false,
			CanAddWebPagePreviews: false,
		},
	})
	if err != nil {
		log.WithError(err).WithField("target_id", target.ID).Error("Ошибка мута")
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("❌ Failed to mute user: %s", err))
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"🔇 *User Muted*\n\nUser: %s\nDuration: %d minutes\nBy: %s",
		target.FirstName, minutes, msg.From.FirstName,
	))
}

// HandleKick — команда /kick: бан и сразу разбан, пользователь может вернуться.
func (h *Handler) HandleKick(ctx context.Context, msg *tgbotapi.Message, args []string) {
	target := h.requireAdminAndTarget(msg, "kick")
	if target == nil {
		return
	}

	member := tgbotapi.ChatMemberConfig{ChatID: msg.Chat.ID, UserID: target.ID}
	if _, err := h.bot.Request(tgbotapi.BanChatMemberConfig{ChatMemberConfig: member}); err != nil {
		log.WithError(err).WithField("target_id", target.ID).Error("Ошибка кика")
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("❌ Failed to kick user: %s", err))
		return
	}
	if _, err := h.bot.Request(tgbotapi.UnbanChatMemberConfig{ChatMemberConfig: member}); err != nil {
		// Бан уже прошёл; разбан не удался — пользователь останется в бане
		log.WithError(err).WithField("target_id", target.ID).Warn("Разбан после кика не удался")
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"👢 *User Kicked*\n\nUser: %s\nBy: %s",
		target.FirstName, msg.From.FirstName,
	))
}

// purgeHardLimit — предохранитель от удаления половины чата одной командой.
const purgeHardLimit = 200

// HandlePurge — команда /purge: удаляет сообщения от reply до команды включительно.
// ID сообщений в группе монотонны, поэтому диапазон корректен.
// Ошибки отдельных удалений (старые/уже удалённые) игнорируются.
func (h *Handler) HandlePurge(ctx context.Context, msg *tgbotapi.Message) {
	if !h.admins.IsAdmin(msg.From.ID) {
		h.sendMessage(msg.Chat.ID, "⚠️ You need admin privileges for this command!")
		return
	}
	if msg.ReplyToMessage == nil {
		h.sendMessage(msg.Chat.ID, "⚠️ Reply to the first message you want to delete!")
		return
	}

	deleted := 0
	for id := msg.ReplyToMessage.MessageID; id <= msg.MessageID && deleted < purgeHardLimit; id++ {
		if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, id)); err == nil {
			deleted++
		}
	}

	log.WithFields(log.Fields{
		"chat_id":  msg.Chat.ID,
		"admin_id": msg.From.ID,
		"deleted":  deleted,
	}).Info("Выполнен purge")
	h.sendMessage(msg.Chat.ID, fmt.Sprintf("🗑️ Deleted %d messages.", deleted))
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

func (h *Handler) sendPhoto(chatID int64, name string, data []byte) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := h.bot.Send(photo); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки карточки")
	}
}
