package games

import (
	"math/rand"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestRollDiceClampsCount(t *testing.T) {
	r := testRand()

	if got := len(RollDice(r, 0)); got != 1 {
		t.Errorf("count=0: ожидалась 1 кость, получено %d", got)
	}
	if got := len(RollDice(r, 100)); got != MaxDice {
		t.Errorf("count=100: ожидалось %d костей, получено %d", MaxDice, got)
	}
	if got := len(RollDice(r, 3)); got != 3 {
		t.Errorf("count=3: ожидалось 3 кости, получено %d", got)
	}

	for i := 0; i < 100; i++ {
		for _, v := range RollDice(r, 5) {
			if v < 1 || v > 6 {
				t.Fatalf("значение кости %d вне [1,6]", v)
			}
		}
	}
}

func TestDiceVerdict(t *testing.T) {
	cases := []struct {
		rolls []int
		want  string
	}{
		{[]int{6}, ""}, // одна кость — без комментария
		{[]int{6, 6, 6}, "🎯 *PERFECT ROLL!*"},
		{[]int{1, 1}, "💀 *WORST LUCK!*"},
		{[]int{5, 6}, "🔥 *Great rolls!*"},
		{[]int{1, 2}, "😅 *Unlucky!*"},
		{[]int{3, 4}, ""},
	}

	for _, c := range cases {
		if got := DiceVerdict(c.rolls); got != c.want {
			t.Errorf("DiceVerdict(%v) = %q, want %q", c.rolls, got, c.want)
		}
	}
}

func TestDiceXP(t *testing.T) {
	if got := DiceXP([]int{4}); got != 6 {
		t.Errorf("одна кость: XP = %d, want 6", got)
	}
	if got := DiceXP([]int{1, 2, 3, 4, 5}); got != 10 {
		t.Errorf("пять костей: XP = %d, want 10", got)
	}
}

func TestRPSJudgeMatrix(t *testing.T) {
	cases := []struct {
		user, bot string
		want      RPSOutcome
	}{
		{"rock", "rock", RPSTie},
		{"rock", "scissors", RPSWin},
		{"rock", "paper", RPSLose},
		{"paper", "paper", RPSTie},
		{"paper", "rock", RPSWin},
		{"paper", "scissors", RPSLose},
		{"scissors", "scissors", RPSTie},
		{"scissors", "paper", RPSWin},
		{"scissors", "rock", RPSLose},
	}

	for _, c := range cases {
		if got := RPSJudge(c.user, c.bot); got != c.want {
			t.Errorf("RPSJudge(%s, %s) = %v, want %v", c.user, c.bot, got, c.want)
		}
	}
}

func TestRPSOutcomeXP(t *testing.T) {
	if RPSWin.XP() != 10 || RPSTie.XP() != 5 || RPSLose.XP() != 3 {
		t.Errorf("XP за исходы: win=%d tie=%d lose=%d, want 10/5/3",
			RPSWin.XP(), RPSTie.XP(), RPSLose.XP())
	}
}

func TestFlipCoin(t *testing.T) {
	r := testRand()

	for i := 0; i < 50; i++ {
		res := FlipCoin(r, "heads")
		if res.UserChoice != "heads" {
			t.Fatalf("выбор игрока переписан: %q", res.UserChoice)
		}
		if res.BotChoice != "heads" && res.BotChoice != "tails" {
			t.Fatalf("некорректный исход монетки: %q", res.BotChoice)
		}
		if res.Won != (res.UserChoice == res.BotChoice) {
			t.Fatalf("Won не согласован с исходом: %+v", res)
		}
	}

	// random подменяется на конкретную сторону
	res := FlipCoin(r, "random")
	if res.UserChoice != "heads" && res.UserChoice != "tails" {
		t.Errorf("random не превратился в сторону: %q", res.UserChoice)
	}
}

func TestPlayGuessRange(t *testing.T) {
	r := testRand()
	for i := 0; i < 100; i++ {
		secret, won := PlayGuess(r, 5)
		if secret < 1 || secret > GuessRange {
			t.Fatalf("загаданное число %d вне [1,%d]", secret, GuessRange)
		}
		if won != (secret == 5) {
			t.Fatalf("won=%v при secret=%d и guess=5", won, secret)
		}
	}
}

func TestEightBall(t *testing.T) {
	r := testRand()
	for i := 0; i < 20; i++ {
		answer, color := EightBall(r)
		if answer == "" || color == "" {
			t.Fatalf("пустой ответ шара: %q / %q", answer, color)
		}
	}
}

func TestTriviaByIndex(t *testing.T) {
	if _, err := TriviaByIndex(-1); err == nil {
		t.Error("индекс -1 должен давать ошибку")
	}
	if _, err := TriviaByIndex(len(triviaBank)); err == nil {
		t.Error("индекс за концом банка должен давать ошибку")
	}

	q, err := TriviaByIndex(0)
	if err != nil {
		t.Fatalf("TriviaByIndex(0): %v", err)
	}
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		t.Errorf("индекс правильного ответа %d вне вариантов", q.Answer)
	}
}

func TestTriviaBankAnswersInRange(t *testing.T) {
	for i, q := range triviaBank {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			t.Errorf("вопрос %d: индекс ответа %d вне вариантов", i, q.Answer)
		}
		if q.Question == "" {
			t.Errorf("вопрос %d: пустой текст", i)
		}
	}
}
