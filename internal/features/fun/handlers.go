package fun

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"ultimate-bot/internal/features/progression"
)

// XP за развлекательные команды.
const xpFun int64 = 3

// Handler обрабатывает развлекательные команды.
type Handler struct {
	bot      *tgbotapi.BotAPI
	progress *progression.Service
	client   *Client

	mu  sync.Mutex
	rng *rand.Rand
}

func NewHandler(bot *tgbotapi.BotAPI, progress *progression.Service, client *Client) *Handler {
	return &Handler{
		bot:      bot,
		progress: progress,
		client:   client,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// HandleJoke — /joke: шутка из API, при ошибке — встроенная.
func (h *Handler) HandleJoke(ctx context.Context, msg *tgbotapi.Message) {
	joke, err := h.client.FetchJoke(ctx)
	if err != nil {
		logrus.WithError(err).Warn("API шуток недоступен, берём встроенную")
		h.mu.Lock()
		j := fallbackJokes[h.rng.Intn(len(fallbackJokes))]
		h.mu.Unlock()
		joke = &j
	}

	h.sendMarkdown(msg.Chat.ID, fmt.Sprintf("😂 %s\n\n_%s_", joke.Setup, joke.Punchline))
	h.grantXP(ctx, msg.From, msg.Chat.ID)
}

// HandleRoast — /roast [reply]: подкол в адрес цели или самого автора.
func (h *Handler) HandleRoast(ctx context.Context, msg *tgbotapi.Message) {
	target := displayName(msg.From)
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		target = displayName(msg.ReplyToMessage.From)
	}

	h.mu.Lock()
	line := roasts[h.rng.Intn(len(roasts))]
	h.mu.Unlock()

	h.sendMarkdown(msg.Chat.ID, "🔥 "+fmt.Sprintf(line, target))
	h.grantXP(ctx, msg.From, msg.Chat.ID)
}

// HandleMeme — /meme: картинка из API, при ошибке — встроенная.
func (h *Handler) HandleMeme(ctx context.Context, msg *tgbotapi.Message) {
	meme, err := h.client.FetchMeme(ctx)
	if err != nil {
		logrus.WithError(err).Warn("API мемов недоступен, берём встроенный")
		h.mu.Lock()
		m := fallbackMemes[h.rng.Intn(len(fallbackMemes))]
		h.mu.Unlock()
		meme = &m
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileURL(meme.URL))
	photo.Caption = meme.Title
	if _, err := h.bot.Send(photo); err != nil {
		logrus.WithError(err).Error("не удалось отправить мем")
		h.sendMarkdown(msg.Chat.ID, "😿 Couldn't fetch a meme right now, try again later.")
		return
	}
	h.grantXP(ctx, msg.From, msg.Chat.ID)
}

// HandleGay — /gay [reply]: шуточный измеритель.
func (h *Handler) HandleGay(ctx context.Context, msg *tgbotapi.Message) {
	target := displayName(msg.From)
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		target = displayName(msg.ReplyToMessage.From)
	}

	h.mu.Lock()
	percent := h.rng.Intn(101)
	h.mu.Unlock()

	h.sendMarkdown(msg.Chat.ID,
		fmt.Sprintf("🏳️‍🌈 *%s* is %d%% gay %s", target, percent, meterBar(percent)))
	h.grantXP(ctx, msg.From, msg.Chat.ID)
}

// HandleLove — /love (только ответом): совместимость автора и цели.
// XP начисляется обоим.
func (h *Handler) HandleLove(ctx context.Context, msg *tgbotapi.Message) {
	if msg.ReplyToMessage == nil || msg.ReplyToMessage.From == nil {
		h.sendMarkdown(msg.Chat.ID, "💘 Reply to someone's message to measure your love!")
		return
	}
	other := msg.ReplyToMessage.From

	h.mu.Lock()
	percent := h.rng.Intn(101)
	h.mu.Unlock()

	h.sendMarkdown(msg.Chat.ID, fmt.Sprintf("💘 *%s* + *%s* = %d%% %s",
		displayName(msg.From), displayName(other), percent, meterBar(percent)))

	h.grantXP(ctx, msg.From, msg.Chat.ID)
	h.grantXP(ctx, other, msg.Chat.ID)
}

// HandleRate — /rate <что-нибудь>: оценка от 0 до 10.
func (h *Handler) HandleRate(ctx context.Context, msg *tgbotapi.Message, args []string) {
	if len(args) == 0 {
		h.sendMarkdown(msg.Chat.ID, "⭐ What should I rate? `/rate pineapple pizza`")
		return
	}
	thing := strings.Join(args, " ")

	h.mu.Lock()
	score := h.rng.Intn(11)
	h.mu.Unlock()

	h.sendMarkdown(msg.Chat.ID, fmt.Sprintf("⭐ I rate *%s* a solid *%d/10*", thing, score))
	h.grantXP(ctx, msg.From, msg.Chat.ID)
}

// meterBar рисует полоску из десяти сегментов.
func meterBar(percent int) string {
	filled := percent / 10
	return strings.Repeat("🟥", filled) + strings.Repeat("⬜", 10-filled)
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return u.FirstName
}

func (h *Handler) sendMarkdown(chatID int64, text string) {
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(out); err != nil {
		logrus.WithError(err).Error("не удалось отправить сообщение")
	}
}

func (h *Handler) grantXP(ctx context.Context, user *tgbotapi.User, chatID int64) {
	if user == nil || user.IsBot {
		return
	}
	username := user.UserName
	if username == "" {
		username = user.FirstName
	}
	if err := h.progress.AddXP(ctx, user.ID, chatID, username, xpFun); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": user.ID,
			"chat_id": chatID,
		}).Error("не удалось начислить XP")
	}
}
