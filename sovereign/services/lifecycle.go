package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

// LifecycleService owns the quest state machine and keeps the paired
// minion row in sync with it:
//
//	Active -> Submitted -> Approved | Rejected
//	Rejected -> Submitted | Abandoned
//	Active -> Abandoned
//	Approved -> Submitted (manual undo)
//
// Abandoned rows are soft-deleted and reactivated in place when the same
// minion is queued again, so repeated abandon/restart cycles do not grow
// the sheet without bound.
type LifecycleService struct {
	quests  repositories.QuestRepository
	minions repositories.MinionRepository
	logs    repositories.QuestLogRepository
	locks   *LockResolver
	badges  *BadgeService
	clock   Clock
}

func NewLifecycleService(
	quests repositories.QuestRepository,
	minions repositories.MinionRepository,
	logs repositories.QuestLogRepository,
	locks *LockResolver,
	badges *BadgeService,
	clock Clock,
) *LifecycleService {
	if clock == nil {
		clock = SystemClock
	}
	return &LifecycleService{
		quests:  quests,
		minions: minions,
		logs:    logs,
		locks:   locks,
		badges:  badges,
		clock:   clock,
	}
}

type StartQuestInput struct {
	Sector  string
	Boss    string
	Minion  string
	DueDate string
}

func (s *LifecycleService) today() string {
	return s.clock.Now().Format(models.DateFormat)
}

// StartQuest queues a quest for a minion. An existing Abandoned row for the
// same key is reactivated in place; an already-open quest is returned as-is
// so the at-most-one-open-quest invariant holds; otherwise a fresh row is
// appended. An empty key is a silent no-op.
func (s *LifecycleService) StartQuest(ctx context.Context, in StartQuestInput) (string, error) {
	ids, err := s.StartQuestBatch(ctx, []StartQuestInput{in})
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

// StartQuestBatch applies the reactivate-or-create rule per item in one
// pass. Rows reactivated earlier in the batch are tracked so a duplicate
// selection cannot grab the same abandoned row twice.
func (s *LifecycleService) StartQuestBatch(ctx context.Context, items []StartQuestInput) ([]string, error) {
	quests, err := s.quests.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	usedRows := make(map[int]bool)
	openKeys := make(map[models.MinionKey]string)
	for _, q := range quests {
		if q.Status.Open() {
			if _, ok := openKeys[q.Key()]; !ok {
				openKeys[q.Key()] = q.ID
			}
		}
	}

	var ids []string
	for _, in := range items {
		key := models.MinionKey{Sector: in.Sector, Boss: in.Boss, Minion: in.Minion}
		if key.IsZero() {
			continue
		}
		if id, ok := openKeys[key]; ok {
			ids = append(ids, id)
			continue
		}

		var reactivated *models.Quest
		for _, q := range quests {
			if q.Status == models.QuestAbandoned && q.Key() == key && !usedRows[q.Row] {
				reactivated = q
				break
			}
		}

		var id string
		if reactivated != nil {
			usedRows[reactivated.Row] = true
			reactivated.Status = models.QuestActive
			reactivated.DateAdded = today
			reactivated.DateCompleted = ""
			reactivated.DateResolved = ""
			reactivated.Feedback = ""
			reactivated.Reflection = ""
			reactivated.TimeSpent = 0
			reactivated.DueDate = in.DueDate
			if err := s.quests.Update(ctx, reactivated); err != nil {
				return nil, err
			}
			id = reactivated.ID
		} else {
			q := &models.Quest{
				ID:        uuid.NewString(),
				Sector:    in.Sector,
				Boss:      in.Boss,
				Minion:    in.Minion,
				Status:    models.QuestActive,
				DateAdded: today,
				DueDate:   in.DueDate,
			}
			if m, err := s.minions.FindByKey(ctx, key); err == nil {
				q.Subject = m.Subject
				q.Recurring = m.Recurring
			}
			if err := s.quests.Append(ctx, q); err != nil {
				return nil, err
			}
			id = q.ID
		}

		openKeys[key] = id
		ids = append(ids, id)

		err := s.syncMinion(ctx, key, func(m *models.Minion) {
			m.QuestStatus = models.QuestActive
			m.DateQuestAdded = today
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

type SubmitQuestInput struct {
	ProofType  string
	ProofLink  string
	Reflection string
	TimeSpent  int
}

// SubmitQuest moves a quest to Submitted with its proof attached. Stale
// feedback and resolution from an earlier rejection are cleared.
func (s *LifecycleService) SubmitQuest(ctx context.Context, questID string, in SubmitQuestInput) error {
	q, err := s.getQuest(ctx, questID)
	if err != nil {
		return err
	}

	q.Status = models.QuestSubmitted
	q.DateCompleted = s.today()
	q.DateResolved = ""
	q.Feedback = ""
	q.ProofType = in.ProofType
	q.ProofLink = in.ProofLink
	q.Reflection = in.Reflection
	if in.TimeSpent > 0 {
		q.TimeSpent = in.TimeSpent
	}
	if err := s.quests.Update(ctx, q); err != nil {
		return err
	}

	return s.syncMinion(ctx, q.Key(), func(m *models.Minion) {
		m.QuestStatus = models.QuestSubmitted
	})
}

// ApproveQuest resolves a quest as passed: the minion becomes Enslaved and
// the lock resolver and badge evaluator run as best-effort side effects.
// Approval itself never fails because of them.
func (s *LifecycleService) ApproveQuest(ctx context.Context, questID, feedback string, timeSpentOverride int) error {
	if err := s.approveOne(ctx, questID, feedback, timeSpentOverride); err != nil {
		return err
	}
	s.runSideEffects(ctx)
	return nil
}

// BulkApprove applies approval semantics to each id, then runs the unlock
// and badge side effects once for the whole batch.
func (s *LifecycleService) BulkApprove(ctx context.Context, questIDs []string, feedback string) error {
	for _, id := range questIDs {
		if err := s.approveOne(ctx, id, feedback, 0); err != nil {
			return err
		}
	}
	s.runSideEffects(ctx)
	return nil
}

func (s *LifecycleService) approveOne(ctx context.Context, questID, feedback string, timeSpentOverride int) error {
	q, err := s.getQuest(ctx, questID)
	if err != nil {
		return err
	}

	today := s.today()
	q.Status = models.QuestApproved
	q.DateResolved = today
	if feedback != "" {
		q.Feedback = feedback
	}
	if timeSpentOverride > 0 {
		q.TimeSpent = timeSpentOverride
	}
	if err := s.quests.Update(ctx, q); err != nil {
		return err
	}

	return s.syncMinion(ctx, q.Key(), func(m *models.Minion) {
		m.Status = models.MinionEnslaved
		m.QuestStatus = models.QuestApproved
		m.DateQuestCompleted = today
	})
}

// RejectQuest resolves a quest as failed. The minion drops back to Engaged
// if a previous approval had enslaved it; the quest history is kept.
func (s *LifecycleService) RejectQuest(ctx context.Context, questID, feedback string) error {
	q, err := s.getQuest(ctx, questID)
	if err != nil {
		return err
	}

	q.Status = models.QuestRejected
	q.DateResolved = s.today()
	q.Feedback = feedback
	if err := s.quests.Update(ctx, q); err != nil {
		return err
	}

	return s.syncMinion(ctx, q.Key(), func(m *models.Minion) {
		if m.Status == models.MinionEnslaved {
			m.Status = models.MinionEngaged
			m.DateQuestCompleted = ""
		}
		m.QuestStatus = models.QuestRejected
	})
}

// ReopenQuest puts a quest back on the board as Active, clearing its
// submission and resolution.
func (s *LifecycleService) ReopenQuest(ctx context.Context, questID string) error {
	q, err := s.getQuest(ctx, questID)
	if err != nil {
		return err
	}

	q.Status = models.QuestActive
	q.DateCompleted = ""
	q.DateResolved = ""
	q.Feedback = ""
	if err := s.quests.Update(ctx, q); err != nil {
		return err
	}

	return s.syncMinion(ctx, q.Key(), func(m *models.Minion) {
		if m.Status == models.MinionEnslaved {
			m.Status = models.MinionEngaged
			m.DateQuestCompleted = ""
		}
		m.QuestStatus = models.QuestActive
	})
}

// UndoApproval is the manual Approved -> Submitted correction: the quest
// goes back to the review queue and the minion is un-enslaved.
func (s *LifecycleService) UndoApproval(ctx context.Context, questID string) error {
	q, err := s.getQuest(ctx, questID)
	if err != nil {
		return err
	}

	q.Status = models.QuestSubmitted
	q.DateResolved = ""
	q.Feedback = ""
	if err := s.quests.Update(ctx, q); err != nil {
		return err
	}

	return s.syncMinion(ctx, q.Key(), func(m *models.Minion) {
		if m.Status == models.MinionEnslaved {
			m.Status = models.MinionEngaged
			m.DateQuestCompleted = ""
		}
		m.QuestStatus = models.QuestSubmitted
	})
}

// AbandonQuest soft-deletes a quest. An audit note of who abandoned it and
// when goes into the Date Completed cell, and the minion's quest status
// mirror is cleared so it can be queued again later.
func (s *LifecycleService) AbandonQuest(ctx context.Context, questID, actor string) error {
	q, err := s.getQuest(ctx, questID)
	if err != nil {
		return err
	}

	today := s.today()
	q.Status = models.QuestAbandoned
	q.DateCompleted = fmt.Sprintf("Abandoned by %s on %s", actor, today)
	q.DateResolved = today
	if err := s.quests.Update(ctx, q); err != nil {
		return err
	}

	return s.syncMinion(ctx, q.Key(), func(m *models.Minion) {
		m.QuestStatus = ""
	})
}

// AddLogEntry appends a dated progress note for a recurring quest.
func (s *LifecycleService) AddLogEntry(ctx context.Context, questID, note string, timeSpent int) error {
	q, err := s.getQuest(ctx, questID)
	if err != nil {
		return err
	}
	return s.logs.Append(ctx, &models.QuestLogEntry{
		QuestID:   q.ID,
		Date:      s.today(),
		Note:      note,
		TimeSpent: timeSpent,
	})
}

func (s *LifecycleService) getQuest(ctx context.Context, questID string) (*models.Quest, error) {
	if questID == "" {
		return nil, fmt.Errorf("quest id is required: %w", models.ErrValidation)
	}
	return s.quests.GetByID(ctx, questID)
}

// syncMinion updates the first minion row matching the key. A missing row
// is tolerated: the quest side of the operation already committed and the
// sheet may be mid-edit.
func (s *LifecycleService) syncMinion(ctx context.Context, key models.MinionKey, mutate func(*models.Minion)) error {
	m, err := s.minions.FindByKey(ctx, key)
	if err != nil {
		if isNotFound(err) {
			slog.Warn("No minion row for quest key",
				slog.String("type", "quest"),
				slog.String("key", key.String()))
			return nil
		}
		return err
	}
	mutate(m)
	return s.minions.Update(ctx, m)
}

// runSideEffects runs the lock resolver and badge evaluator after an
// approval. Failures here are logged and swallowed: the primary operation
// already succeeded and must not be reported as failed.
func (s *LifecycleService) runSideEffects(ctx context.Context) {
	if s.locks != nil {
		if _, err := s.locks.Resolve(ctx); err != nil {
			slog.Error("Lock resolution failed after approval",
				slog.String("type", "quest"),
				slog.Any("error", err))
		}
	}
	if s.badges != nil {
		if _, err := s.badges.Sync(ctx); err != nil {
			slog.Error("Badge sync failed after approval",
				slog.String("type", "quest"),
				slog.Any("error", err))
		}
	}
}
