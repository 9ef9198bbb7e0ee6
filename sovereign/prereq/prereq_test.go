package prereq

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []Requirement
	}{
		{
			name: "empty expression",
			expr: "",
			want: nil,
		},
		{
			name: "single boss",
			expr: "Boss:The Compiler",
			want: []Requirement{
				{Kind: KindBoss, Boss: "The Compiler", Raw: "Boss:The Compiler"},
			},
		},
		{
			name: "single minion",
			expr: "Minion:The Compiler>Recursion Basics",
			want: []Requirement{
				{Kind: KindMinion, Boss: "The Compiler", Minion: "Recursion Basics", Raw: "Minion:The Compiler>Recursion Basics"},
			},
		},
		{
			name: "mixed with spacing and trailing separator",
			expr: "Boss:Grammar Golem; Minion:The Compiler>Recursion Basics;",
			want: []Requirement{
				{Kind: KindBoss, Boss: "Grammar Golem", Raw: "Boss:Grammar Golem"},
				{Kind: KindMinion, Boss: "The Compiler", Minion: "Recursion Basics", Raw: "Minion:The Compiler>Recursion Basics"},
			},
		},
		{
			name: "malformed tokens stay invalid",
			expr: "Boss:;Minion:NoSeparator;garbage",
			want: []Requirement{
				{Kind: KindInvalid, Raw: "Boss:"},
				{Kind: KindInvalid, Raw: "Minion:NoSeparator"},
				{Kind: KindInvalid, Raw: "garbage"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.expr); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestJoinRoundTrip(t *testing.T) {
	expr := "Boss:Grammar Golem;Minion:The Compiler>Recursion Basics"
	if got := Join(Parse(expr)); got != expr {
		t.Errorf("Join(Parse(%q)) = %q", expr, got)
	}
}
