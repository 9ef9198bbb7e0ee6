package models

import (
	domain "github.com/sovereignhud/sovereign-hud/sovereign/models"
)

// QuestView is a quest row shaped for the board and review pages.
type QuestView struct {
	ID            string `json:"id"`
	Sector        string `json:"sector"`
	Boss          string `json:"boss"`
	Minion        string `json:"minion"`
	Status        string `json:"status"`
	ProofType     string `json:"proof_type,omitempty"`
	ProofLink     string `json:"proof_link,omitempty"`
	SuggestedTask string `json:"suggested_task,omitempty"`
	Feedback      string `json:"feedback,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	DateAdded     string `json:"date_added,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Recurring     bool   `json:"recurring,omitempty"`
	TimeSpent     int    `json:"time_spent,omitempty"`
}

func NewQuestView(q *domain.Quest) QuestView {
	return QuestView{
		ID:            q.ID,
		Sector:        q.Sector,
		Boss:          q.Boss,
		Minion:        q.Minion,
		Status:        string(q.Status),
		ProofType:     q.ProofType,
		ProofLink:     q.ProofLink,
		SuggestedTask: q.SuggestedTask,
		Feedback:      q.Feedback,
		DueDate:       q.DueDate,
		DateAdded:     q.DateAdded,
		Subject:       q.Subject,
		Recurring:     q.Recurring,
		TimeSpent:     q.TimeSpent,
	}
}

// MinionView is a minion row shaped for search results and admin lists.
type MinionView struct {
	Sector       string `json:"sector"`
	Boss         string `json:"boss"`
	Minion       string `json:"minion"`
	Status       string `json:"status"`
	QuestStatus  string `json:"quest_status,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Impact       int    `json:"impact"`
	Recurring    bool   `json:"recurring,omitempty"`
	Prerequisite string `json:"prerequisite,omitempty"`
}

func NewMinionView(m *domain.Minion) MinionView {
	return MinionView{
		Sector:       m.Sector,
		Boss:         m.Boss,
		Minion:       m.Name,
		Status:       string(m.Status),
		QuestStatus:  string(m.QuestStatus),
		Subject:      m.Subject,
		Impact:       m.Impact,
		Recurring:    m.Recurring,
		Prerequisite: m.Prerequisite,
	}
}

// BadgeView is a badge row for the trophy page and API.
type BadgeView struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Name       string `json:"name"`
	DateEarned string `json:"date_earned"`
}

func NewBadgeView(b *domain.Badge) BadgeView {
	return BadgeView{
		ID:         b.ID,
		Category:   string(b.Category),
		Name:       b.Name,
		DateEarned: b.DateEarned,
	}
}

// StartBatchRequest starts quests for several minions at once.
type StartBatchRequest struct {
	Minions []MinionKeyRequest `json:"minions"`
}

// MinionKeyRequest addresses one minion in a JSON request body.
type MinionKeyRequest struct {
	Sector string `json:"sector"`
	Boss   string `json:"boss"`
	Minion string `json:"minion"`
}

func (r MinionKeyRequest) Key() domain.MinionKey {
	return domain.MinionKey{Sector: r.Sector, Boss: r.Boss, Minion: r.Minion}
}

// SubmitQuestRequest carries the student's proof for review.
type SubmitQuestRequest struct {
	ProofType  string `json:"proof_type" form:"proof_type"`
	ProofLink  string `json:"proof_link" form:"proof_link"`
	Reflection string `json:"reflection" form:"reflection"`
	TimeSpent  int    `json:"time_spent" form:"time_spent"`
}

// ReviewRequest carries optional teacher feedback for approve and
// reject decisions.
type ReviewRequest struct {
	Feedback string `json:"feedback" form:"feedback"`
}

// BulkApproveRequest approves several submitted quests at once.
type BulkApproveRequest struct {
	QuestIDs []string `json:"quest_ids"`
	Feedback string   `json:"feedback"`
}

// MinionCreateRequest adds one minion row from the admin page.
type MinionCreateRequest struct {
	Sector       string `json:"sector" form:"sector"`
	Boss         string `json:"boss" form:"boss"`
	Minion       string `json:"minion" form:"minion"`
	Subject      string `json:"subject" form:"subject"`
	Impact       int    `json:"impact" form:"impact"`
	Recurring    bool   `json:"recurring" form:"recurring"`
	Prerequisite string `json:"prerequisite" form:"prerequisite"`
}

// BulkLockRequest locks a set of minions behind one prerequisite
// expression.
type BulkLockRequest struct {
	Minions      []MinionKeyRequest `json:"minions"`
	Prerequisite string             `json:"prerequisite"`
}

// LoginRequest exchanges an access token for the session cookie.
type LoginRequest struct {
	Token string `json:"token" form:"token"`
}
