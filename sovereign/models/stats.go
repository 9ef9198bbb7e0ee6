package models

import "strings"

// StatSnapshot is one row of the Command_Center sheet: the current level
// string and accumulated XP for a single stat. Levels are computed by
// spreadsheet formula; this side only reads them.
type StatSnapshot struct {
	Row int

	Stat         string
	CurrentLevel string
	TotalXP      int
}

// Stat names as they appear in the Command_Center sheet.
const (
	StatIntelligence = "Intelligence"
	StatStamina      = "Stamina"
	StatTempo        = "Tempo"
	StatReputation   = "Reputation"
)

// TierLadder is the ordered level-name ladder. A "Current Level" cell reads
// like "Gold II" and is matched by prefix against these names.
var TierLadder = []string{"Bronze", "Copper", "Silver", "Gold", "Platinum"}

// TierIndex returns the ladder position of a level string, or -1 when the
// level matches no tier name.
func TierIndex(level string) int {
	for i, name := range TierLadder {
		if strings.HasPrefix(strings.TrimSpace(level), name) {
			return i
		}
	}
	return -1
}
