package bot

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser("UltimateBot")

	cases := []struct {
		name      string
		text      string
		wantCmd   string
		wantArgs  []string
		isCommand bool
	}{
		{"простая команда", "/rank", "rank", nil, true},
		{"команда с аргументами", "/dice 3", "dice", []string{"3"}, true},
		{"команда с упоминанием бота", "/rank@UltimateBot", "rank", nil, true},
		{"упоминание в другом регистре", "/rank@ultimatebot", "rank", nil, true},
		{"чужой бот игнорируется", "/rank@OtherBot", "", nil, false},
		{"не команда", "hello", "", nil, false},
		{"пустая строка", "", "", nil, false},
		{"одинокий слэш", "/", "", nil, false},
		{"регистр команды нормализуется", "/RANK", "rank", nil, true},
		{"пробелы вокруг", "  /warn  spam link  ", "warn", []string{"spam", "link"}, true},
		{"несколько аргументов", "/rate pineapple pizza", "rate", []string{"pineapple", "pizza"}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cmd, args, ok := p.ParseCommand(c.text)
			if ok != c.isCommand {
				t.Fatalf("isCommand = %v, want %v", ok, c.isCommand)
			}
			if cmd != c.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd, c.wantCmd)
			}
			if !reflect.DeepEqual(args, c.wantArgs) {
				t.Errorf("args = %v, want %v", args, c.wantArgs)
			}
		})
	}
}

func TestCanonicalCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"roll", "dice"},
		{"flip", "coinflip"},
		{"rockpaperscissors", "rps"},
		{"stats", "rank"},
		{"leaderboard", "top"},
		{"dice", "dice"},
		{"top", "top"},
		{"unknown", "unknown"},
	}

	for _, tc := range tests {
		if got := canonicalCommand(tc.in); got != tc.want {
			t.Errorf("canonicalCommand(%q) = %q, ожидалось %q", tc.in, got, tc.want)
		}
	}
}
