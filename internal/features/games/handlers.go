package games

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"ultimate-bot/internal/features/progression"
)

// Префиксы callback-данных игровых клавиатур.
const (
	CallbackCoinFlip = "cf_"
	CallbackRPS      = "rps_"
	CallbackGuess    = "guess_"
	CallbackTrivia   = "trivia_"
)

// Handler обрабатывает игровые команды и нажатия на игровые клавиатуры.
type Handler struct {
	bot      *tgbotapi.BotAPI
	progress *progression.Service

	mu  sync.Mutex
	rng *rand.Rand
}

func NewHandler(bot *tgbotapi.BotAPI, progress *progression.Service) *Handler {
	return &Handler{
		bot:      bot,
		progress: progress,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// HandleDice — /dice [count]: бросок костей с короткой анимацией.
func (h *Handler) HandleDice(ctx context.Context, msg *tgbotapi.Message, args []string) {
	count := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			count = n
		}
	}

	h.mu.Lock()
	rolls := RollDice(h.rng, count)
	h.mu.Unlock()

	rolling := tgbotapi.NewMessage(msg.Chat.ID, "🎲 Rolling...")
	sent, err := h.bot.Send(rolling)
	if err != nil {
		logrus.WithError(err).Error("не удалось отправить сообщение броска")
		return
	}
	time.Sleep(time.Second)

	text := fmt.Sprintf("🎲 %s\n\n*Total: %d*", DiceFaces(rolls), DiceTotal(rolls))
	if verdict := DiceVerdict(rolls); verdict != "" {
		text += "\n" + verdict
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(edit); err != nil {
		logrus.WithError(err).Error("не удалось отредактировать сообщение броска")
	}

	h.grantXP(ctx, msg.From, msg.Chat.ID, DiceXP(rolls))
}

// HandleCoinFlip — /coinflip: клавиатура выбора стороны монетки.
func (h *Handler) HandleCoinFlip(ctx context.Context, msg *tgbotapi.Message) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🪙 Heads", CallbackCoinFlip+"heads"),
			tgbotapi.NewInlineKeyboardButtonData("🪙 Tails", CallbackCoinFlip+"tails"),
		),
	)
	out := tgbotapi.NewMessage(msg.Chat.ID, "Pick a side:")
	out.ReplyMarkup = keyboard
	if _, err := h.bot.Send(out); err != nil {
		logrus.WithError(err).Error("не удалось отправить клавиатуру монетки")
	}
}

// HandleCoinFlipCallback обрабатывает выбор стороны монетки.
func (h *Handler) HandleCoinFlipCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		h.answerExpired(cq)
		return
	}
	choice := strings.TrimPrefix(cq.Data, CallbackCoinFlip)

	h.mu.Lock()
	result := FlipCoin(h.rng, choice)
	h.mu.Unlock()

	verdict := "You lose! 😢"
	if result.Won {
		verdict = "You win! 🎉"
	}
	text := fmt.Sprintf("🪙 You picked *%s*, the coin landed on *%s*.\n\n%s",
		result.UserChoice, result.BotChoice, verdict)

	h.answerAndEdit(cq, text)
	h.grantXP(ctx, cq.From, cq.Message.Chat.ID, result.XP())
}

// HandleRPS — /rps: клавиатура камень-ножницы-бумага.
func (h *Handler) HandleRPS(ctx context.Context, msg *tgbotapi.Message) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🪨 Rock", CallbackRPS+"rock"),
			tgbotapi.NewInlineKeyboardButtonData("📄 Paper", CallbackRPS+"paper"),
			tgbotapi.NewInlineKeyboardButtonData("✂️ Scissors", CallbackRPS+"scissors"),
		),
	)
	out := tgbotapi.NewMessage(msg.Chat.ID, "Rock, paper or scissors?")
	out.ReplyMarkup = keyboard
	if _, err := h.bot.Send(out); err != nil {
		logrus.WithError(err).Error("не удалось отправить клавиатуру КНБ")
	}
}

// HandleRPSCallback обрабатывает ход игрока в КНБ.
func (h *Handler) HandleRPSCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		h.answerExpired(cq)
		return
	}
	choice := strings.TrimPrefix(cq.Data, CallbackRPS)
	if rpsBeats[choice] == "" {
		h.answerAndEdit(cq, "Unknown move.")
		return
	}

	h.mu.Lock()
	botChoice, outcome := PlayRPS(h.rng, choice)
	h.mu.Unlock()

	text := fmt.Sprintf("You: *%s*\nMe: *%s*\n\n%s", choice, botChoice, outcome.Text())
	h.answerAndEdit(cq, text)
	h.grantXP(ctx, cq.From, cq.Message.Chat.ID, outcome.XP())
}

// HandleGuess — /guess: клавиатура чисел от 1 до 10.
func (h *Handler) HandleGuess(ctx context.Context, msg *tgbotapi.Message) {
	var rows [][]tgbotapi.InlineKeyboardButton
	row := make([]tgbotapi.InlineKeyboardButton, 0, 5)
	for n := 1; n <= GuessRange; n++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(n), CallbackGuess+strconv.Itoa(n)))
		if len(row) == 5 {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, 5)
		}
	}

	out := tgbotapi.NewMessage(msg.Chat.ID,
		fmt.Sprintf("I'm thinking of a number from 1 to %d. Guess it!", GuessRange))
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.bot.Send(out); err != nil {
		logrus.WithError(err).Error("не удалось отправить клавиатуру угадайки")
	}
}

// HandleGuessCallback обрабатывает догадку игрока.
func (h *Handler) HandleGuessCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		h.answerExpired(cq)
		return
	}
	guess, err := strconv.Atoi(strings.TrimPrefix(cq.Data, CallbackGuess))
	if err != nil || guess < 1 || guess > GuessRange {
		h.answerAndEdit(cq, "Invalid guess.")
		return
	}

	h.mu.Lock()
	secret, won := PlayGuess(h.rng, guess)
	h.mu.Unlock()

	var text string
	xp := XPLose
	if won {
		text = fmt.Sprintf("🎉 Correct! The number was *%d*.", secret)
		xp = XPWin
	} else {
		text = fmt.Sprintf("❌ Nope, you guessed *%d* but it was *%d*.", guess, secret)
	}

	h.answerAndEdit(cq, text)
	h.grantXP(ctx, cq.From, cq.Message.Chat.ID, xp)
}

// HandleTrivia — /trivia: случайный вопрос с вариантами ответа.
func (h *Handler) HandleTrivia(ctx context.Context, msg *tgbotapi.Message) {
	h.mu.Lock()
	idx, q := PickTrivia(h.rng)
	h.mu.Unlock()

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, opt := range q.Options {
		data := fmt.Sprintf("%s%d_%d", CallbackTrivia, idx, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, data)))
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, "❓ "+q.Question)
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.bot.Send(out); err != nil {
		logrus.WithError(err).Error("не удалось отправить вопрос викторины")
	}
}

// HandleTriviaCallback проверяет выбранный вариант ответа.
func (h *Handler) HandleTriviaCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		h.answerExpired(cq)
		return
	}
	parts := strings.Split(strings.TrimPrefix(cq.Data, CallbackTrivia), "_")
	if len(parts) != 2 {
		h.answerAndEdit(cq, "Broken trivia button.")
		return
	}
	qIdx, err1 := strconv.Atoi(parts[0])
	opt, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		h.answerAndEdit(cq, "Broken trivia button.")
		return
	}

	q, err := TriviaByIndex(qIdx)
	if err != nil || opt < 0 || opt >= len(q.Options) {
		h.answerAndEdit(cq, "Broken trivia button.")
		return
	}

	var text string
	xp := XPLose
	if opt == q.Answer {
		text = fmt.Sprintf("✅ Correct! *%s*", q.Options[q.Answer])
		xp = XPWin
	} else {
		text = fmt.Sprintf("❌ Wrong. The answer was *%s*.", q.Options[q.Answer])
	}
	text = "❓ " + q.Question + "\n\n" + text

	h.answerAndEdit(cq, text)
	h.grantXP(ctx, cq.From, cq.Message.Chat.ID, xp)
}

// HandleEightBall — /8ball <вопрос>: ответ шара предсказаний.
func (h *Handler) HandleEightBall(ctx context.Context, msg *tgbotapi.Message, args []string) {
	if len(args) == 0 {
		out := tgbotapi.NewMessage(msg.Chat.ID, "🎱 Ask me a question: `/8ball will it rain?`")
		out.ParseMode = tgbotapi.ModeMarkdown
		if _, err := h.bot.Send(out); err != nil {
			logrus.WithError(err).Error("не удалось отправить подсказку 8ball")
		}
		return
	}

	h.mu.Lock()
	answer, color := EightBall(h.rng)
	h.mu.Unlock()

	out := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("🎱 %s *%s*", color, answer))
	out.ParseMode = tgbotapi.ModeMarkdown
	out.ReplyToMessageID = msg.MessageID
	if _, err := h.bot.Send(out); err != nil {
		logrus.WithError(err).Error("не удалось отправить ответ 8ball")
	}

	h.grantXP(ctx, msg.From, msg.Chat.ID, XPLose)
}

// answerAndEdit гасит "часики" на кнопке и заменяет сообщение с клавиатурой
// на итоговый текст.
func (h *Handler) answerAndEdit(cq *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		logrus.WithError(err).Debug("не удалось ответить на callback")
	}
	if cq.Message == nil {
		return
	}
	edit := tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(edit); err != nil {
		logrus.WithError(err).Error("не удалось отредактировать игровое сообщение")
	}
}

// answerExpired отвечает на callback от устаревшей кнопки: Telegram не
// прислал сообщение, так что ни редактировать, ни начислять XP нечего.
func (h *Handler) answerExpired(cq *tgbotapi.CallbackQuery) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, "This button has expired.")); err != nil {
		logrus.WithError(err).Debug("не удалось ответить на устаревший callback")
	}
}

func (h *Handler) grantXP(ctx context.Context, user *tgbotapi.User, chatID int64, amount int64) {
	if user == nil {
		return
	}
	username := user.UserName
	if username == "" {
		username = user.FirstName
	}
	if err := h.progress.AddXP(ctx, user.ID, chatID, username, amount); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": user.ID,
			"chat_id": chatID,
			"amount":  amount,
		}).Error("не удалось начислить XP за игру")
	}
}
