// Package prereq parses the prerequisite expressions stored in the
// "Locked for what?" column of the Sectors sheet.
//
// An expression is a ;-delimited list of requirement tokens:
//
//	Boss:The Compiler
//	Minion:The Compiler>Recursion Basics
//
// All tokens must be satisfied for the minion to unlock (logical AND,
// there is no OR).
package prereq

import (
	"fmt"
	"strings"
)

type Kind int

const (
	// KindInvalid marks a token that could not be parsed. It never
	// satisfies, so a typo in the sheet keeps the minion locked instead of
	// unlocking it by accident.
	KindInvalid Kind = iota
	KindBoss
	KindMinion
)

// Requirement is one token of a prerequisite expression.
type Requirement struct {
	Kind   Kind
	Boss   string
	Minion string
	Raw    string // original token, kept for invalid-token reporting
}

const (
	bossPrefix   = "Boss:"
	minionPrefix = "Minion:"
	minionSep    = ">"
	tokenSep     = ";"
)

// Parse splits an expression into requirements. Empty tokens are dropped;
// malformed tokens come back as KindInvalid.
func Parse(expr string) []Requirement {
	var reqs []Requirement
	for _, token := range strings.Split(expr, tokenSep) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		reqs = append(reqs, parseToken(token))
	}
	return reqs
}

func parseToken(token string) Requirement {
	switch {
	case strings.HasPrefix(token, bossPrefix):
		boss := strings.TrimSpace(strings.TrimPrefix(token, bossPrefix))
		if boss == "" {
			return Requirement{Kind: KindInvalid, Raw: token}
		}
		return Requirement{Kind: KindBoss, Boss: boss, Raw: token}
	case strings.HasPrefix(token, minionPrefix):
		rest := strings.TrimPrefix(token, minionPrefix)
		boss, minion, ok := strings.Cut(rest, minionSep)
		boss = strings.TrimSpace(boss)
		minion = strings.TrimSpace(minion)
		if !ok || boss == "" || minion == "" {
			return Requirement{Kind: KindInvalid, Raw: token}
		}
		return Requirement{Kind: KindMinion, Boss: boss, Minion: minion, Raw: token}
	default:
		return Requirement{Kind: KindInvalid, Raw: token}
	}
}

// String serializes a requirement back into its sheet form.
func (r Requirement) String() string {
	switch r.Kind {
	case KindBoss:
		return bossPrefix + r.Boss
	case KindMinion:
		return fmt.Sprintf("%s%s%s%s", minionPrefix, r.Boss, minionSep, r.Minion)
	default:
		return r.Raw
	}
}

// Join serializes a requirement list into a sheet expression.
func Join(reqs []Requirement) string {
	parts := make([]string, 0, len(reqs))
	for _, r := range reqs {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, tokenSep)
}
