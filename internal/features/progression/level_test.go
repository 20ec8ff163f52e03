package progression

import "testing"

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{1, 1},
		{999, 1},
		{1000, 2},
		{1001, 2},
		{1999, 2},
		{2000, 3},
		{2999, 3},
		{10000, 11},
		{-5, 1},
	}

	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestProgressWithinLevel(t *testing.T) {
	cases := []struct {
		xp   int64
		want float64
	}{
		{0, 0},
		{500, 0.5},
		{999, 0.999},
		{1000, 0},
		{1250, 0.25},
		{-1, 0},
	}

	for _, c := range cases {
		if got := ProgressWithinLevel(c.xp); got != c.want {
			t.Errorf("ProgressWithinLevel(%d) = %v, want %v", c.xp, got, c.want)
		}
	}
}
