package cards

import (
	"reflect"
	"testing"
)

func TestWrapText(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{
			name:  "короткая строка не трогается",
			in:    "hello world",
			width: 40,
			want:  []string{"hello world"},
		},
		{
			name:  "перенос по словам",
			in:    "one two three four",
			width: 9,
			want:  []string{"one two", "three", "four"},
		},
		{
			name:  "длинное слово режется жёстко",
			in:    "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
		{
			name:  "пустая строка",
			in:    "",
			width: 40,
			want:  nil,
		},
		{
			name:  "ширина учитывает руны, не байты",
			in:    "привет мир",
			width: 6,
			want:  []string{"привет", "мир"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WrapText(c.in, c.width)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("WrapText(%q, %d) = %v, want %v", c.in, c.width, got, c.want)
			}
		})
	}
}
