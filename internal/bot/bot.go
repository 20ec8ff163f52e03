// Package bot содержит главный модуль бота — polling, разбор команд
// и маршрутизацию к обработчикам фич.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"ultimate-bot/internal/bot/filters"
	"ultimate-bot/internal/bot/middleware"
	"ultimate-bot/internal/common"
	"ultimate-bot/internal/config"
	"ultimate-bot/internal/features/admin"
	"ultimate-bot/internal/features/fun"
	"ultimate-bot/internal/features/games"
	"ultimate-bot/internal/features/moderation"
	"ultimate-bot/internal/features/progression"
)

// Префикс callback-данных кнопок главного меню (/start).
const callbackMenu = "menu_"

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	progressService *progression.Service
	progressHandler *progression.Handler
	gamesHandler    *games.Handler
	funHandler      *fun.Handler
	modHandler      *moderation.Handler
	adminService    *admin.Service

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	progressService *progression.Service,
	progressHandler *progression.Handler,
	gamesHandler *games.Handler,
	funHandler *fun.Handler,
	modHandler *moderation.Handler,
	adminService *admin.Service,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:             api,
		cfg:             cfg,
		chatFilter:      chatFilter,
		rateLimiter:     middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		progressService: progressService,
		progressHandler: progressHandler,
		gamesHandler:    gamesHandler,
		funHandler:      funHandler,
		modHandler:      modHandler,
		adminService:    adminService,
		parser:          NewCommandParser(api.Self.UserName),
		inflight:        make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				b.rateLimiter.Close()
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}
	message := update.Message

	// Событие вступления новых участников
	if message.NewChatMembers != nil {
		if b.chatFilter.CheckAccess(message) {
			b.handleNewMembers(ctx, message.Chat.ID, message.NewChatMembers)
		}
		return
	}

	if message.Text == "" {
		return
	}

	middleware.LogMessage(message)

	if !b.chatFilter.CheckAccess(message) {
		return
	}

	// Rate limiting
	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("parsed command")

	b.routeCommand(ctx, message, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, msg *tgbotapi.Message, cmd string, args []string) {
	switch canonicalCommand(cmd) {
	case "start":
		b.sendMenu(msg.Chat.ID)
	case "help":
		b.sendMessage(msg.Chat.ID, helpText(b.cfg))
	case "id":
		b.handleID(msg)
	case "info":
		b.handleInfo(msg)
	case "login":
		b.handleLogin(msg, args)
	case "logout":
		b.adminService.Logout(msg.From.ID)
		b.sendMessage(msg.Chat.ID, "Logged out.")

	// Статистика и прогресс
	case "rank":
		b.progressHandler.HandleRank(ctx, msg)
	case "profile":
		b.progressHandler.HandleProfile(ctx, msg)
	case "top":
		b.progressHandler.HandleTop(ctx, msg)
	case "daily":
		b.progressHandler.HandleDaily(ctx, msg)
	case "groupinfo":
		b.progressHandler.HandleGroupInfo(ctx, msg)

	// Игры
	case "dice":
		if b.cfg.FeatureGamesEnabled {
			b.gamesHandler.HandleDice(ctx, msg, args)
		}
	case "coinflip":
		if b.cfg.FeatureGamesEnabled {
			b.gamesHandler.HandleCoinFlip(ctx, msg)
		}
	case "rps":
		if b.cfg.FeatureGamesEnabled {
			b.gamesHandler.HandleRPS(ctx, msg)
		}
	case "guess":
		if b.cfg.FeatureGamesEnabled {
			b.gamesHandler.HandleGuess(ctx, msg)
		}
	case "trivia":
		if b.cfg.FeatureGamesEnabled {
			b.gamesHandler.HandleTrivia(ctx, msg)
		}
	case "8ball":
		if b.cfg.FeatureGamesEnabled {
			b.gamesHandler.HandleEightBall(ctx, msg, args)
		}

	// Развлечения
	case "joke":
		if b.cfg.FeatureFunEnabled {
			b.funHandler.HandleJoke(ctx, msg)
		}
	case "roast":
		if b.cfg.FeatureFunEnabled {
			b.funHandler.HandleRoast(ctx, msg)
		}
	case "meme":
		if b.cfg.FeatureFunEnabled {
			b.funHandler.HandleMeme(ctx, msg)
		}
	case "gay":
		if b.cfg.FeatureFunEnabled {
			b.funHandler.HandleGay(ctx, msg)
		}
	case "love":
		if b.cfg.FeatureFunEnabled {
			b.funHandler.HandleLove(ctx, msg)
		}
	case "rate":
		if b.cfg.FeatureFunEnabled {
			b.funHandler.HandleRate(ctx, msg, args)
		}

	// Модерация
	case "warn":
		b.modHandler.HandleWarn(ctx, msg, args)
	case "warns":
		b.modHandler.HandleWarns(ctx, msg)
	case "ban":
		b.modHandler.HandleBan(ctx, msg, args)
	case "mute":
		b.modHandler.HandleMute(ctx, msg, args)
	case "kick":
		b.modHandler.HandleKick(ctx, msg, args)
	case "purge":
		b.modHandler.HandlePurge(ctx, msg)
	}
}

// handleCallback маршрутизирует нажатия inline-кнопок по префиксу данных.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	middleware.LogCallback(cq)

	if cq.From != nil && !b.rateLimiter.Allow(cq.From.ID) {
		log.WithField("user_id", cq.From.ID).Debug("rate limited")
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "Slow down!")); err != nil {
			log.WithError(err).Debug("не удалось ответить на callback")
		}
		return
	}

	switch {
	case strings.HasPrefix(cq.Data, games.CallbackCoinFlip):
		b.gamesHandler.HandleCoinFlipCallback(ctx, cq)
	case strings.HasPrefix(cq.Data, games.CallbackRPS):
		b.gamesHandler.HandleRPSCallback(ctx, cq)
	case strings.HasPrefix(cq.Data, games.CallbackGuess):
		b.gamesHandler.HandleGuessCallback(ctx, cq)
	case strings.HasPrefix(cq.Data, games.CallbackTrivia):
		b.gamesHandler.HandleTriviaCallback(ctx, cq)
	case strings.HasPrefix(cq.Data, callbackMenu):
		b.handleMenuCallback(cq)
	default:
		log.WithField("data", cq.Data).Debug("неизвестный callback")
	}
}

// handleNewMembers приветствует новых участников и заводит им прогресс.
func (b *Bot) handleNewMembers(ctx context.Context, chatID int64, newMembers []tgbotapi.User) {
	for _, user := range newMembers {
		if user.IsBot {
			continue
		}

		username := user.UserName
		if username == "" {
			username = user.FirstName
		}

		if err := b.progressService.EnsureUser(ctx, user.ID, chatID, username); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("EnsureUser failed")
		}
		if err := b.progressService.AddXP(ctx, user.ID, chatID, username, b.cfg.WelcomeXP); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("welcome XP failed")
		}

		b.sendMessage(chatID, fmt.Sprintf(
			"👋 Welcome, %s! You got +%d XP for joining. Type /help to see what I can do.",
			user.FirstName, b.cfg.WelcomeXP))

		log.WithField("user", user.UserName).Info("Новый участник обработан")
	}
}

// sendMenu отправляет главное меню (/start).
func (b *Bot) sendMenu(chatID int64) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Games", callbackMenu+"games"),
			tgbotapi.NewInlineKeyboardButtonData("😂 Fun", callbackMenu+"fun"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", callbackMenu+"stats"),
			tgbotapi.NewInlineKeyboardButtonData("🛡 Moderation", callbackMenu+"mod"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "Hi! I'm the entertainment bot of this chat. Pick a category:")
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки меню")
	}
}

// handleMenuCallback показывает список команд выбранной категории.
func (b *Bot) handleMenuCallback(cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.WithError(err).Debug("не удалось ответить на callback")
	}
	if cq.Message == nil {
		return
	}

	var text string
	switch strings.TrimPrefix(cq.Data, callbackMenu) {
	case "games":
		text = "🎮 *Games*\n/dice [1-5] — roll dice\n/coinflip — flip a coin\n/rps — rock paper scissors\n/guess — guess my number\n/trivia — trivia question\n/8ball <question> — magic 8-ball"
	case "fun":
		text = "😂 *Fun*\n/joke — random joke\n/roast [reply] — roast someone\n/meme — random meme\n/gay [reply] — gay meter\n/love (reply) — love meter\n/rate <thing> — rate anything"
	case "stats":
		text = "📊 *Stats*\n/rank — your rank card\n/profile (reply) — someone's card\n/top — leaderboard\n/daily — daily XP bonus\n/groupinfo — chat stats"
	case "mod":
		text = "🛡 *Moderation* (admins, reply to a message)\n/warn <reason>\n/warns\n/ban <reason>\n/mute [minutes]\n/kick\n/purge"
	default:
		return
	}

	edit := tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		log.WithError(err).Error("не удалось отредактировать меню")
	}
}

// handleID — /id: идентификаторы пользователя и чата.
func (b *Bot) handleID(msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("👤 Your ID: `%d`\n💬 Chat ID: `%d`", msg.From.ID, msg.Chat.ID))
}

// handleInfo — /info: кто я такой.
func (b *Bot) handleInfo(msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, fmt.Sprintf(
		"🤖 *%s*\nGames, jokes, XP ranks and moderation for this chat.\nType /help for the command list.",
		b.api.Self.FirstName))
}

// handleLogin — /login <пароль>: вход в админы. Только в личке,
// чтобы пароль не засветился в группе.
func (b *Bot) handleLogin(msg *tgbotapi.Message, args []string) {
	if !msg.Chat.IsPrivate() {
		b.sendMessage(msg.Chat.ID, "🔐 Use /login in a private chat with me.")
		return
	}
	if len(args) == 0 {
		b.sendMessage(msg.Chat.ID, "Usage: /login <password>")
		return
	}

	err := b.adminService.Login(msg.From.ID, strings.Join(args, " "))
	switch {
	case err == nil:
		b.sendMessage(msg.Chat.ID, "✅ You're an admin now. The session lasts 24 hours.")
	case errors.Is(err, common.ErrLoginDisabled):
		b.sendMessage(msg.Chat.ID, "🔐 Password login is not configured.")
	case errors.Is(err, common.ErrTooManyAttempts):
		b.sendMessage(msg.Chat.ID, "⏳ Too many attempts, try again in an hour.")
	case errors.Is(err, common.ErrWrongPassword):
		b.sendMessage(msg.Chat.ID, "❌ Wrong password.")
	default:
		log.WithError(err).WithField("user_id", msg.From.ID).Error("ошибка логина")
		b.sendMessage(msg.Chat.ID, "Something went wrong, try again later.")
	}
}

func helpText(cfg *config.Config) string {
	var sb strings.Builder
	sb.WriteString("*Commands*\n")
	sb.WriteString("\n📊 /rank /profile /top /daily /groupinfo /id /info\n")
	if cfg.FeatureGamesEnabled {
		sb.WriteString("🎮 /dice /coinflip /rps /guess /trivia /8ball\n")
	}
	if cfg.FeatureFunEnabled {
		sb.WriteString("😂 /joke /roast /meme /gay /love /rate\n")
	}
	sb.WriteString("🛡 admins: /warn /warns /ban /mute /kick /purge\n")
	sb.WriteString("🔐 /login (DM) /logout")
	return sb.String()
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToChat отправляет произвольный текст в чат (для дайджеста).
func (b *Bot) SendMessageToChat(chatID int64, text string) {
	b.sendMessage(chatID, text)
}
