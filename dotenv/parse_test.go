package dotenv

import (
	"reflect"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Pair
		ok   bool
	}{
		{"simple pair", "KEY=value", Pair{"KEY", "value"}, true},
		{"empty line", "", Pair{}, false},
		{"whitespace only", "   ", Pair{}, false},
		{"comment line", "# anything", Pair{}, false},
		{"commented assignment", "# KEY=value", Pair{}, false},
		{"no equals sign", "no equals sign here", Pair{}, false},
		{"empty value", "A=", Pair{"A", ""}, true},
		{"value with equals", "A=a=b", Pair{"A", "a=b"}, true},
		{"inline comment", "A=B # comment", Pair{"A", "B"}, true},
		{"comment immediately after value", "KEY=value#test", Pair{"KEY", "value"}, true},
		{"value is only a comment", "KEY=#abc", Pair{"KEY", ""}, true},
		{"hash in key", "key#=value", Pair{}, false},
		{"hash before equals", "KEY#B=C#", Pair{}, false},
		{"spaces around equals", "KEY = value", Pair{"KEY", "value"}, true},
		{"leading whitespace", "  KEY=value  ", Pair{"KEY", "value"}, true},
		{"key only whitespace", "  = value", Pair{}, false},
		{"url value", "DB=postgres://u:p@host/db?ssl=true", Pair{"DB", "postgres://u:p@host/db?ssl=true"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	t.Run("preserves order and skips noise", func(t *testing.T) {
		input := "A=B\n# comment\n\nmalformed\nC=D # trailing\n"
		want := []Pair{{"A", "B"}, {"C", "D"}}

		got := ParseLines(input)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ParseLines() = %+v, want %+v", got, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := ParseLines(""); got != nil {
			t.Errorf("ParseLines(\"\") = %+v, want nil", got)
		}
	})

	t.Run("crlf line endings", func(t *testing.T) {
		got := ParseLines("A=B\r\nC=D\r\n")
		want := []Pair{{"A", "B"}, {"C", "D"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ParseLines() = %+v, want %+v", got, want)
		}
	})
}

func TestKeys(t *testing.T) {
	pairs := []Pair{{"FOO", "bar"}, {"BAR", "baz"}}
	want := []string{"FOO", "BAR"}
	if got := Keys(pairs); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}
