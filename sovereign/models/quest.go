package models

type QuestStatus string

const (
	QuestActive    QuestStatus = "Active"
	QuestSubmitted QuestStatus = "Submitted"
	QuestApproved  QuestStatus = "Approved"
	QuestRejected  QuestStatus = "Rejected"
	QuestAbandoned QuestStatus = "Abandoned"
)

// Open reports whether the quest still blocks its minion. At most one open
// quest may exist per minion key at a time.
func (s QuestStatus) Open() bool {
	return s == QuestActive || s == QuestSubmitted
}

// Quest is one attempt at completing a minion: a row in the Quests sheet.
// Abandoned rows are never deleted, only flagged, and get reactivated in
// place when the same minion is queued again.
type Quest struct {
	Row int

	ID            string
	Sector        string
	Boss          string
	Minion        string
	Status        QuestStatus
	ProofType     string
	ProofLink     string
	SuggestedTask string
	DateAdded     string
	DateCompleted string
	DateResolved  string
	Feedback      string
	DueDate       string
	Subject       string
	Recurring     bool
	Reflection    string
	TimeSpent     int
}

func (q *Quest) Key() MinionKey {
	return MinionKey{Sector: q.Sector, Boss: q.Boss, Minion: q.Minion}
}

// QuestLogEntry is a dated progress note for a recurring quest. Append-only.
type QuestLogEntry struct {
	Row int

	QuestID   string
	Date      string
	Note      string
	TimeSpent int
}
