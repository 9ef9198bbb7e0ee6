package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

const testDay = "2026-03-02"

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func testClock(t *testing.T, day string) Clock {
	t.Helper()
	parsed, err := time.Parse(models.DateFormat, day)
	if err != nil {
		t.Fatalf("bad test day %q: %v", day, err)
	}
	return fixedClock{t: parsed}
}

func newTestClient() *sheets.MemClient {
	client := sheets.NewMemClient()
	client.Seed(models.TableSectors, models.SectorsHeaders, nil)
	client.Seed(models.TableQuests, models.QuestsHeaders, nil)
	client.Seed(models.TableQuestLog, models.QuestLogHeaders, nil)
	client.Seed(models.TableBadges, models.BadgesHeaders, nil)
	client.Seed(models.TableCommandCenter, models.CommandCenterHeaders, nil)
	client.Seed(models.TableDefinitions, models.DefinitionsHeaders, nil)
	return client
}

func newLifecycleEnv(t *testing.T) (*sheets.MemClient, *repositories.Repositories, *LifecycleService) {
	t.Helper()
	client := newTestClient()
	repos := repositories.New(client)
	clock := testClock(t, testDay)
	locks := NewLockResolver(repos.Minions)
	badges := NewBadgeService(repos.Minions, repos.Quests, repos.Stats, repos.Badges, clock)
	svc := NewLifecycleService(repos.Quests, repos.Minions, repos.QuestLog, locks, badges, clock)
	return client, repos, svc
}

func seedMinions(t *testing.T, repos *repositories.Repositories, minions ...*models.Minion) {
	t.Helper()
	if err := repos.Minions.Append(context.Background(), minions); err != nil {
		t.Fatalf("seed minions: %v", err)
	}
}

func getMinion(t *testing.T, repos *repositories.Repositories, key models.MinionKey) *models.Minion {
	t.Helper()
	m, err := repos.Minions.FindByKey(context.Background(), key)
	if err != nil {
		t.Fatalf("find minion %s: %v", key, err)
	}
	return m
}

func getQuest(t *testing.T, repos *repositories.Repositories, id string) *models.Quest {
	t.Helper()
	q, err := repos.Quests.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get quest %s: %v", id, err)
	}
	return q
}

func fractionsKey() models.MinionKey {
	return models.MinionKey{Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions"}
}

func fractionsMinion() *models.Minion {
	return &models.Minion{
		Sector:    "Mathematics",
		Boss:      "Algebra",
		Name:      "Fractions",
		Status:    models.MinionEngaged,
		Impact:    2,
		Subject:   "Math",
		DateAdded: "2026-02-01",
	}
}

func TestStartQuestCreatesQuestAndMarksMinion(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	seedMinions(t, repos, fractionsMinion())

	id, err := svc.StartQuest(context.Background(), StartQuestInput{
		Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions", DueDate: "2026-03-09",
	})
	if err != nil {
		t.Fatalf("StartQuest: %v", err)
	}
	if id == "" {
		t.Fatal("expected a quest id")
	}

	q := getQuest(t, repos, id)
	if q.Status != models.QuestActive {
		t.Errorf("status = %s, want Active", q.Status)
	}
	if q.Subject != "Math" {
		t.Errorf("subject = %q, want copied from minion", q.Subject)
	}
	if q.DateAdded != testDay {
		t.Errorf("date added = %q, want %q", q.DateAdded, testDay)
	}
	if q.DueDate != "2026-03-09" {
		t.Errorf("due date = %q", q.DueDate)
	}

	m := getMinion(t, repos, fractionsKey())
	if m.QuestStatus != models.QuestActive {
		t.Errorf("minion quest status = %s, want Active", m.QuestStatus)
	}
	if m.DateQuestAdded != testDay {
		t.Errorf("minion date quest added = %q, want %q", m.DateQuestAdded, testDay)
	}
}

func TestStartQuestWithOpenQuestReturnsExisting(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	seedMinions(t, repos, fractionsMinion())

	in := StartQuestInput{Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions"}
	first, err := svc.StartQuest(context.Background(), in)
	if err != nil {
		t.Fatalf("first StartQuest: %v", err)
	}
	second, err := svc.StartQuest(context.Background(), in)
	if err != nil {
		t.Fatalf("second StartQuest: %v", err)
	}
	if first != second {
		t.Errorf("second start returned %s, want existing %s", second, first)
	}

	quests, err := repos.Quests.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(quests) != 1 {
		t.Errorf("quest rows = %d, want 1", len(quests))
	}
}

func TestStartQuestReactivatesAbandonedRow(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	seedMinions(t, repos, fractionsMinion())

	in := StartQuestInput{Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions"}
	id, err := svc.StartQuest(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.AbandonQuest(context.Background(), id, "Student"); err != nil {
		t.Fatal(err)
	}

	again, err := svc.StartQuest(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if again != id {
		t.Errorf("reactivation produced id %s, want reuse of %s", again, id)
	}

	quests, err := repos.Quests.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(quests) != 1 {
		t.Fatalf("quest rows = %d, want 1 (reactivated in place)", len(quests))
	}
	q := quests[0]
	if q.Status != models.QuestActive {
		t.Errorf("status = %s, want Active", q.Status)
	}
	if q.DateCompleted != "" || q.DateResolved != "" || q.Feedback != "" {
		t.Errorf("stale fields not cleared: %+v", q)
	}
}

func TestStartQuestBatchDoesNotReuseOneRowTwice(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	seedMinions(t, repos, fractionsMinion())

	in := StartQuestInput{Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions"}
	id, err := svc.StartQuest(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.AbandonQuest(context.Background(), id, "Student"); err != nil {
		t.Fatal(err)
	}

	ids, err := svc.StartQuestBatch(context.Background(), []StartQuestInput{in, in})
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != ids[1] {
		t.Errorf("duplicate selection got ids %v, want the same open quest twice", ids)
	}
	quests, err := repos.Quests.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(quests) != 1 {
		t.Errorf("quest rows = %d, want 1", len(quests))
	}
}

func TestSubmitAndApprove(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	seedMinions(t, repos, fractionsMinion())

	id, err := svc.StartQuest(context.Background(), StartQuestInput{
		Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions",
	})
	if err != nil {
		t.Fatal(err)
	}

	err = svc.SubmitQuest(context.Background(), id, SubmitQuestInput{
		ProofType:  "photo",
		ProofLink:  "https://example.test/proof.jpg",
		Reflection: "Tricky but done",
		TimeSpent:  45,
	})
	if err != nil {
		t.Fatalf("SubmitQuest: %v", err)
	}
	q := getQuest(t, repos, id)
	if q.Status != models.QuestSubmitted {
		t.Fatalf("status = %s, want Submitted", q.Status)
	}
	if q.ProofLink == "" || q.DateCompleted != testDay || q.TimeSpent != 45 {
		t.Errorf("submission fields not persisted: %+v", q)
	}

	if err := svc.ApproveQuest(context.Background(), id, "Nice work", 0); err != nil {
		t.Fatalf("ApproveQuest: %v", err)
	}
	q = getQuest(t, repos, id)
	if q.Status != models.QuestApproved {
		t.Errorf("status = %s, want Approved", q.Status)
	}
	if q.DateResolved != testDay || q.Feedback != "Nice work" {
		t.Errorf("resolution fields: %+v", q)
	}

	m := getMinion(t, repos, fractionsKey())
	if m.Status != models.MinionEnslaved {
		t.Errorf("minion status = %s, want Enslaved", m.Status)
	}
	if m.DateQuestCompleted != testDay {
		t.Errorf("minion date quest completed = %q, want %q", m.DateQuestCompleted, testDay)
	}

	badges, err := repos.Badges.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, b := range badges {
		if b.ID == "meta:first-quest" {
			found = true
		}
	}
	if !found {
		t.Error("first approval did not award meta:first-quest")
	}
}

func TestApproveUnlocksPrerequisite(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	locked := &models.Minion{
		Sector:       "Mathematics",
		Boss:         "Geometry",
		Name:         "Angles",
		Status:       models.MinionLocked,
		Prerequisite: "Boss:Algebra",
	}
	seedMinions(t, repos, fractionsMinion(), locked)

	id, err := svc.StartQuest(context.Background(), StartQuestInput{
		Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SubmitQuest(context.Background(), id, SubmitQuestInput{ProofType: "link"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.ApproveQuest(context.Background(), id, "", 0); err != nil {
		t.Fatal(err)
	}

	m := getMinion(t, repos, models.MinionKey{Sector: "Mathematics", Boss: "Geometry", Minion: "Angles"})
	if m.Status != models.MinionEngaged {
		t.Errorf("locked minion status = %s, want Engaged after boss fell", m.Status)
	}
	if m.Prerequisite != "" {
		t.Errorf("prerequisite not cleared: %q", m.Prerequisite)
	}
}

func TestRejectDropsEnslavedBackToEngaged(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	seedMinions(t, repos, fractionsMinion())

	id, err := svc.StartQuest(context.Background(), StartQuestInput{
		Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SubmitQuest(context.Background(), id, SubmitQuestInput{}); err != nil {
		t.Fatal(err)
	}
	if err := svc.ApproveQuest(context.Background(), id, "", 0); err != nil {
		t.Fatal(err)
	}

	if err := svc.RejectQuest(context.Background(), id, "Show your work"); err != nil {
		t.Fatalf("RejectQuest: %v", err)
	}
	q := getQuest(t, repos, id)
	if q.Status != models.QuestRejected || q.Feedback != "Show your work" {
		t.Errorf("quest after reject: %+v", q)
	}
	m := getMinion(t, repos, fractionsKey())
	if m.Status != models.MinionEngaged {
		t.Errorf("minion status = %s, want Engaged", m.Status)
	}
	if m.DateQuestCompleted != "" {
		t.Errorf("date quest completed not cleared: %q", m.DateQuestCompleted)
	}
}

func TestUndoApprovalReturnsQuestToReviewQueue(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	seedMinions(t, repos, fractionsMinion())

	id, err := svc.StartQuest(context.Background(), StartQuestInput{
		Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SubmitQuest(context.Background(), id, SubmitQuestInput{}); err != nil {
		t.Fatal(err)
	}
	if err := svc.ApproveQuest(context.Background(), id, "Good", 0); err != nil {
		t.Fatal(err)
	}

	if err := svc.UndoApproval(context.Background(), id); err != nil {
		t.Fatalf("UndoApproval: %v", err)
	}
	q := getQuest(t, repos, id)
	if q.Status != models.QuestSubmitted {
		t.Errorf("status = %s, want Submitted", q.Status)
	}
	if q.DateResolved != "" || q.Feedback != "" {
		t.Errorf("resolution not cleared: %+v", q)
	}
	m := getMinion(t, repos, fractionsKey())
	if m.Status != models.MinionEngaged {
		t.Errorf("minion status = %s, want Engaged", m.Status)
	}
	if m.DateQuestCompleted != "" {
		t.Errorf("date quest completed not cleared: %q", m.DateQuestCompleted)
	}
}

func TestAbandonWritesAuditNote(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	seedMinions(t, repos, fractionsMinion())

	id, err := svc.StartQuest(context.Background(), StartQuestInput{
		Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.AbandonQuest(context.Background(), id, "Mom"); err != nil {
		t.Fatalf("AbandonQuest: %v", err)
	}

	q := getQuest(t, repos, id)
	if q.Status != models.QuestAbandoned {
		t.Errorf("status = %s, want Abandoned", q.Status)
	}
	want := "Abandoned by Mom on " + testDay
	if q.DateCompleted != want {
		t.Errorf("audit note = %q, want %q", q.DateCompleted, want)
	}
	m := getMinion(t, repos, fractionsKey())
	if m.QuestStatus != "" {
		t.Errorf("minion quest status = %q, want cleared", m.QuestStatus)
	}
}

func TestOperationsValidateQuestID(t *testing.T) {
	_, _, svc := newLifecycleEnv(t)

	if err := svc.SubmitQuest(context.Background(), "", SubmitQuestInput{}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty id: err = %v, want ErrValidation", err)
	}
	if err := svc.ApproveQuest(context.Background(), "no-such-quest", "", 0); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestAddLogEntry(t *testing.T) {
	_, repos, svc := newLifecycleEnv(t)
	m := fractionsMinion()
	m.Recurring = true
	seedMinions(t, repos, m)

	id, err := svc.StartQuest(context.Background(), StartQuestInput{
		Sector: "Mathematics", Boss: "Algebra", Minion: "Fractions",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.AddLogEntry(context.Background(), id, "Practiced 20 problems", 30); err != nil {
		t.Fatalf("AddLogEntry: %v", err)
	}

	entries, err := repos.QuestLog.GetByQuestID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Date != testDay || entries[0].TimeSpent != 30 {
		t.Errorf("entry = %+v", entries[0])
	}
}
