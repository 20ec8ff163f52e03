// Package progression — handlers.go обрабатывает команды /rank, /profile,
// /top, /daily и /groupinfo.
//
// Карточки отправляются картинками; если рендер упал — откатываемся
// на текстовый ответ, команда не должна умирать из-за картинки.
package progression

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // декодеры аватаров
	_ "image/png"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"ultimate-bot/internal/cards"
	"ultimate-bot/internal/common"
	"ultimate-bot/internal/config"
)

// Handler обрабатывает команды статистики.
type Handler struct {
	service  *Service
	bot      *tgbotapi.BotAPI
	renderer *cards.Renderer
	cfg      *config.Config

	avatarClient *http.Client
}

// NewHandler создаёт обработчик статистики.
func NewHandler(service *Service, bot *tgbotapi.BotAPI, renderer *cards.Renderer, cfg *config.Config) *Handler {
	return &Handler{
		service:      service,
		bot:          bot,
		renderer:     renderer,
		cfg:          cfg,
		avatarClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// HandleRank — команда /rank: карточка ранга отправителя.
func (h *Handler) HandleRank(ctx context.Context, msg *tgbotapi.Message) {
	h.sendRankCard(ctx, msg.Chat.ID, msg.From, "You don't have any XP yet! Chat and play games to earn some.")
}

// HandleProfile — команда /profile: карточка цели (reply) или своя.
func (h *Handler) HandleProfile(ctx context.Context, msg *tgbotapi.Message) {
	target := msg.From
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		target = msg.ReplyToMessage.From
	}
	h.sendRankCard(ctx, msg.Chat.ID, target, "This user has no XP yet!")
}

func (h *Handler) sendRankCard(ctx context.Context, chatID int64, user *tgbotapi.User, emptyText string) {
	rank, err := h.service.GetRank(ctx, user.ID, chatID)
	if errors.Is(err, common.ErrNoProgress) {
		h.sendMessage(chatID, "📊 "+emptyText)
		return
	}
	if err != nil {
		log.WithError(err).Error("Ошибка получения ранга")
		h.sendMessage(chatID, "❌ Failed to fetch your stats, try again later.")
		return
	}

	png, renderErr := h.renderer.RankCard(cards.RankCardInput{
		Username: user.FirstName,
		XP:       rank.XP,
		Level:    rank.Level,
		Rank:     rank.Rank,
		Avatar:   h.fetchAvatar(user.ID),
	})
	if renderErr != nil {
		log.WithError(renderErr).Error("Ошибка рендера карточки ранга")
		h.sendMessage(chatID, fmt.Sprintf(
			"📊 %s\n⭐ Level: %d\n✨ XP: %s\n🏆 Rank: #%d",
			user.FirstName, rank.Level, common.FormatNumber(rank.XP), rank.Rank,
		))
		return
	}

	h.sendPhoto(chatID, "rank.png", png)
}

// HandleTop — команда /top: карточка таблицы лидеров.
func (h *Handler) HandleTop(ctx context.Context, msg *tgbotapi.Message) {
	top, err := h.service.GetTop(ctx, msg.Chat.ID, 10)
	if err != nil {
		log.WithError(err).Error("Ошибка получения топа")
		h.sendMessage(msg.Chat.ID, "❌ Failed to fetch the leaderboard, try again later.")
		return
	}
	if len(top) == 0 {
		h.sendMessage(msg.Chat.ID, "🏆 No rankings yet in this chat!")
		return
	}

	entries := make([]cards.LeaderboardEntry, 0, len(top))
	for _, e := range top {
		entries = append(entries, cards.LeaderboardEntry{Username: e.Username, XP: e.XP, Level: e.Level})
	}

	png, renderErr := h.renderer.LeaderboardCard(entries, "🏆 LEADERBOARD")
	if renderErr != nil {
		log.WithError(renderErr).Error("Ошибка рендера таблицы лидеров")
		h.sendMessage(msg.Chat.ID, FormatTopText(top))
		return
	}

	h.sendPhoto(msg.Chat.ID, "leaderboard.png", png)
}

// HandleDaily — команда /daily: ежедневный бонус раз в календарный день.
func (h *Handler) HandleDaily(ctx context.Context, msg *tgbotapi.Message) {
	amount, err := h.service.ClaimDaily(ctx, msg.From.ID, msg.Chat.ID, msg.From.FirstName)
	if errors.Is(err, common.ErrDailyAlreadyClaimed) {
		h.sendMessage(msg.Chat.ID, "🎁 You already claimed your daily bonus today. Come back tomorrow!")
		return
	}
	if err != nil {
		log.WithError(err).Error("Ошибка выдачи ежедневного бонуса")
		h.sendMessage(msg.Chat.ID, "❌ Failed to claim the daily bonus, try again later.")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("🎁 *Daily bonus!*\n%s got +%d XP. See you tomorrow!", msg.From.FirstName, amount))
}

// HandleGroupInfo — команда /groupinfo: сводка по чату.
func (h *Handler) HandleGroupInfo(ctx context.Context, msg *tgbotapi.Message) {
	stats, err := h.service.GetScopeStats(ctx, msg.Chat.ID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения сводки чата")
		h.sendMessage(msg.Chat.ID, "❌ Failed to fetch group stats.")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"👥 *Group Info*\n\nName: %s\nID: `%d`\nTracked members: %d\nTotal XP earned: %s",
		msg.Chat.Title, msg.Chat.ID, stats.Users, common.FormatNumber(stats.TotalXP),
	))
}

// FormatTopText — текстовый вариант таблицы лидеров.
// Используется как запасной вывод и ежедневным дайджестом.
func FormatTopText(top []TopEntry) string {
	if len(top) == 0 {
		return "🏆 No rankings yet in this chat!"
	}
	text := "🏆 *Top Users*\n\n"
	for i, e := range top {
		text += fmt.Sprintf("%d. %s - Lvl %d (%s XP)\n", i+1, e.Username, e.Level, common.FormatNumber(e.XP))
	}
	return text
}

// fetchAvatar скачивает аватар пользователя. Любая ошибка — карточка без аватара.
func (h *Handler) fetchAvatar(userID int64) image.Image {
	photos, err := h.bot.GetUserProfilePhotos(tgbotapi.NewUserProfilePhotos(userID))
	if err != nil || photos.TotalCount == 0 || len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		return nil
	}

	sizes := photos.Photos[0]
	url, err := h.bot.GetFileDirectURL(sizes[len(sizes)-1].FileID)
	if err != nil {
		return nil
	}

	resp, err := h.avatarClient.Get(url)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		log.WithError(err).Debug("avatar decode failed")
		return nil
	}
	return img
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
