// Package games реализует игровые команды: кости, монетка,
// камень-ножницы-бумага, угадайка, викторина и шар предсказаний.
//
// games.go — чистая игровая логика без Telegram: исходы и начисляемый XP
// считаются здесь, обработчики только отправляют сообщения.
package games

import (
	"fmt"
	"math/rand"
	"strings"
)

// Суммы XP за игры.
const (
	XPWin  int64 = 10
	XPTie  int64 = 5
	XPLose int64 = 3
)

// --- Кости ---

// MaxDice — максимум костей за один бросок.
const MaxDice = 5

var diceFaces = []string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

// RollDice бросает count костей (count обрезается в [1, MaxDice]).
func RollDice(r *rand.Rand, count int) []int {
	if count < 1 {
		count = 1
	}
	if count > MaxDice {
		count = MaxDice
	}
	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = r.Intn(6) + 1
	}
	return rolls
}

// DiceTotal — сумма броска.
func DiceTotal(rolls []int) int {
	total := 0
	for _, v := range rolls {
		total += v
	}
	return total
}

// DiceFaces — бросок смайликами.
func DiceFaces(rolls []int) string {
	faces := make([]string, len(rolls))
	for i, v := range rolls {
		faces[i] = diceFaces[v-1]
	}
	return strings.Join(faces, " ")
}

// DiceVerdict — комментарий к броску нескольких костей.
// Для одной кости комментария нет.
func DiceVerdict(rolls []int) string {
	if len(rolls) < 2 {
		return ""
	}

	total := DiceTotal(rolls)
	allSix, allOne := true, true
	for _, v := range rolls {
		if v != 6 {
			allSix = false
		}
		if v != 1 {
			allOne = false
		}
	}

	switch {
	case allSix:
		return "🎯 *PERFECT ROLL!*"
	case allOne:
		return "💀 *WORST LUCK!*"
	case total >= len(rolls)*5:
		return "🔥 *Great rolls!*"
	case total <= len(rolls)*2:
		return "😅 *Unlucky!*"
	}
	return ""
}

// DiceXP — XP за бросок: 5 + число костей.
func DiceXP(rolls []int) int64 {
	return 5 + int64(len(rolls))
}

// --- Монетка ---

// CoinResult — исход подбрасывания монетки.
type CoinResult struct {
	UserChoice string
	BotChoice  string
	Won        bool
}

// FlipCoin подбрасывает монетку. choice — "heads", "tails" или "random".
func FlipCoin(r *rand.Rand, choice string) CoinResult {
	sides := []string{"heads", "tails"}
	if choice != "heads" && choice != "tails" {
		choice = sides[r.Intn(2)]
	}
	bot := sides[r.Intn(2)]
	return CoinResult{UserChoice: choice, BotChoice: bot, Won: choice == bot}
}

// XP — XP за исход монетки: +10 за победу, +5 за проигрыш.
func (c CoinResult) XP() int64 {
	if c.Won {
		return XPWin
	}
	return XPTie
}

// --- Камень-ножницы-бумага ---

// RPSOutcome — исход партии с точки зрения игрока.
type RPSOutcome int

const (
	RPSTie RPSOutcome = iota
	RPSWin
	RPSLose
)

var rpsBeats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

// RPSChoices — допустимые ходы.
func RPSChoices() []string { return []string{"rock", "paper", "scissors"} }

// PlayRPS разыгрывает партию против бота.
func PlayRPS(r *rand.Rand, userChoice string) (string, RPSOutcome) {
	choices := RPSChoices()
	botChoice := choices[r.Intn(len(choices))]
	return botChoice, RPSJudge(userChoice, botChoice)
}

// RPSJudge определяет исход по двум ходам.
func RPSJudge(userChoice, botChoice string) RPSOutcome {
	switch {
	case userChoice == botChoice:
		return RPSTie
	case rpsBeats[userChoice] == botChoice:
		return RPSWin
	default:
		return RPSLose
	}
}

// XP — XP за исход партии: +10 победа, +5 ничья, +3 проигрыш.
func (o RPSOutcome) XP() int64 {
	switch o {
	case RPSWin:
		return XPWin
	case RPSTie:
		return XPTie
	default:
		return XPLose
	}
}

// Text — текст исхода для ответа.
func (o RPSOutcome) Text() string {
	switch o {
	case RPSWin:
		return "You win! 🎉"
	case RPSTie:
		return "It's a tie!"
	default:
		return "I win! 😎"
	}
}

// --- Угадайка ---

// GuessRange — числа от 1 до GuessRange включительно.
const GuessRange = 10

// PlayGuess загадывает число и сверяет с догадкой игрока.
func PlayGuess(r *rand.Rand, guess int) (secret int, won bool) {
	secret = r.Intn(GuessRange) + 1
	return secret, guess == secret
}

// --- Шар предсказаний ---

type eightBallAnswer struct {
	text  string
	color string
}

var eightBallAnswers = []eightBallAnswer{
	{"It is certain.", "🟢"},
	{"Without a doubt.", "🟢"},
	{"You may rely on it.", "🟢"},
	{"Ask again later.", "🟡"},
	{"Cannot predict now.", "🟡"},
	{"Don't count on it.", "🔴"},
	{"My reply is no.", "🔴"},
	{"Very doubtful.", "🔴"},
}

// EightBall возвращает ответ шара и его цвет.
func EightBall(r *rand.Rand) (answer, color string) {
	a := eightBallAnswers[r.Intn(len(eightBallAnswers))]
	return a.text, a.color
}

// --- Викторина ---

// TriviaQuestion — вопрос викторины с четырьмя вариантами.
type TriviaQuestion struct {
	Question string
	Options  [4]string
	Answer   int // индекс правильного варианта
}

var triviaBank = []TriviaQuestion{
	{
		Question: "What is the largest planet in the Solar System?",
		Options:  [4]string{"Earth", "Jupiter", "Saturn", "Neptune"},
		Answer:   1,
	},
	{
		Question: "How many continents are there on Earth?",
		Options:  [4]string{"5", "6", "7", "8"},
		Answer:   2,
	},
	{
		Question: "Which element has the chemical symbol 'O'?",
		Options:  [4]string{"Gold", "Osmium", "Oxygen", "Silver"},
		Answer:   2,
	},
	{
		Question: "In which year did the first human land on the Moon?",
		Options:  [4]string{"1965", "1969", "1971", "1975"},
		Answer:   1,
	},
	{
		Question: "What is the fastest land animal?",
		Options:  [4]string{"Lion", "Pronghorn", "Cheetah", "Greyhound"},
		Answer:   2,
	},
	{
		Question: "How many strings does a standard guitar have?",
		Options:  [4]string{"4", "5", "6", "7"},
		Answer:   2,
	},
	{
		Question: "Which ocean is the deepest?",
		Options:  [4]string{"Atlantic", "Indian", "Arctic", "Pacific"},
		Answer:   3,
	},
	{
		Question: "What is the capital of Australia?",
		Options:  [4]string{"Sydney", "Melbourne", "Canberra", "Perth"},
		Answer:   2,
	},
}

// PickTrivia выбирает случайный вопрос. Возвращает его индекс в банке.
func PickTrivia(r *rand.Rand) (int, TriviaQuestion) {
	i := r.Intn(len(triviaBank))
	return i, triviaBank[i]
}

// TriviaByIndex возвращает вопрос по индексу из callback-данных.
func TriviaByIndex(i int) (TriviaQuestion, error) {
	if i < 0 || i >= len(triviaBank) {
		return TriviaQuestion{}, fmt.Errorf("нет вопроса с индексом %d", i)
	}
	return triviaBank[i], nil
}
