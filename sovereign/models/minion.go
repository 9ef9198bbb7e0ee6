package models

import "strings"

type MinionStatus string

const (
	MinionLocked   MinionStatus = "Locked"
	MinionEngaged  MinionStatus = "Engaged"
	MinionEnslaved MinionStatus = "Enslaved"
)

// MinionKey is the composite natural key shared by the Sectors and Quests
// tables. The join between them is by value tuple, not by foreign key.
type MinionKey struct {
	Sector string
	Boss   string
	Minion string
}

func (k MinionKey) IsZero() bool {
	return k.Sector == "" || k.Boss == "" || k.Minion == ""
}

func (k MinionKey) String() string {
	return k.Sector + "/" + k.Boss + "/" + k.Minion
}

// Minion is one learning objective: a row in the Sectors sheet.
type Minion struct {
	Row int // 1-based sheet row, 0 when not yet persisted

	Sector       string
	Boss         string
	Name         string
	Status       MinionStatus
	Impact       int
	Intelligence int
	Stamina      int
	Tempo        int
	Reputation   int
	Subject      string
	Recurring    bool
	Survival     bool
	Prerequisite string
	QuestStatus  QuestStatus
	DateAdded    string

	// DateQuestAdded is stamped when a quest is started for this minion.
	DateQuestAdded string

	// DateQuestCompleted is set when the minion becomes Enslaved and
	// cleared again if an approval is undone.
	DateQuestCompleted string
}

func (m *Minion) Key() MinionKey {
	return MinionKey{Sector: m.Sector, Boss: m.Boss, Minion: m.Name}
}

// BossKey identifies a boss within a sector.
type BossKey struct {
	Sector string
	Boss   string
}

func (m *Minion) BossKey() BossKey {
	return BossKey{Sector: m.Sector, Boss: m.Boss}
}

// ParseBool reads the loose yes/true flags the sheet uses for checkboxes.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "x":
		return true
	}
	return false
}

func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return ""
}
