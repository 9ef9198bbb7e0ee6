package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

// Mailer sends one plain-text mail.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPMailer is the stdlib SMTP implementation.
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.From, strings.Join(to, ", "), subject, body)

	host, _, _ := strings.Cut(m.Addr, ":")
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, host)
	}
	return smtp.SendMail(m.Addr, auth, m.From, to, []byte(msg))
}

// DigestService mails a weekly progress summary. A single hourly ticker
// polls the clock; the digest fires once on the configured weekday/hour.
type DigestService struct {
	minions  repositories.MinionRepository
	quests   repositories.QuestRepository
	mailer   Mailer
	to       []string
	weekday  time.Weekday
	hour     int
	clock    Clock
	lastSent string // date of the last send, guards double fire
}

func NewDigestService(
	minions repositories.MinionRepository,
	quests repositories.QuestRepository,
	mailer Mailer,
	to []string,
	weekday time.Weekday,
	hour int,
	clock Clock,
) *DigestService {
	if clock == nil {
		clock = SystemClock
	}
	return &DigestService{
		minions: minions,
		quests:  quests,
		mailer:  mailer,
		to:      to,
		weekday: weekday,
		hour:    hour,
		clock:   clock,
	}
}

// Run blocks until the context is done, checking hourly whether the
// weekly send is due. Send failures are logged and retried on the next
// matching tick, never fatal.
func (s *DigestService) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.clock.Now()
			if now.Weekday() != s.weekday || now.Hour() != s.hour {
				continue
			}
			day := now.Format(models.DateFormat)
			if s.lastSent == day {
				continue
			}
			if err := s.SendNow(ctx); err != nil {
				slog.Error("Weekly digest failed",
					slog.String("type", "sys"),
					slog.Any("error", err))
				continue
			}
			s.lastSent = day
		}
	}
}

// SendNow builds and mails the summary for the trailing seven days.
func (s *DigestService) SendNow(ctx context.Context) error {
	minions, err := s.minions.GetAll(ctx)
	if err != nil {
		return err
	}
	quests, err := s.quests.GetAll(ctx)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	weekAgo := now.AddDate(0, 0, -7)

	approved, started, pending := 0, 0, 0
	var conquered []string
	for _, q := range quests {
		switch q.Status {
		case models.QuestApproved:
			if inWindow(q.DateResolved, weekAgo, now) {
				approved++
			}
		case models.QuestSubmitted:
			pending++
		}
		if inWindow(q.DateAdded, weekAgo, now) {
			started++
		}
	}
	for _, m := range minions {
		if m.Status == models.MinionEnslaved && inWindow(m.DateQuestCompleted, weekAgo, now) {
			conquered = append(conquered, m.Key().String())
		}
	}
	streak := ComputeStreak(ActivityDates(minions, quests), now)

	var b strings.Builder
	fmt.Fprintf(&b, "Sovereign HUD weekly report (%s)\n\n", now.Format(models.DateFormat))
	fmt.Fprintf(&b, "Quests approved this week: %d\n", approved)
	fmt.Fprintf(&b, "Quests started this week:  %d\n", started)
	fmt.Fprintf(&b, "Awaiting review:           %d\n", pending)
	fmt.Fprintf(&b, "Current streak: %d day(s), best ever: %d\n", streak.Current, streak.Best)
	if len(conquered) > 0 {
		b.WriteString("\nMinions enslaved this week:\n")
		for _, name := range conquered {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}

	return s.mailer.Send(s.to, "Sovereign HUD weekly report", b.String())
}

func inWindow(date string, from, to time.Time) bool {
	t, err := time.Parse(models.DateFormat, date)
	if err != nil {
		return false
	}
	return !t.Before(from.Truncate(24*time.Hour)) && !t.After(to)
}
