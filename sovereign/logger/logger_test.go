package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func capture(t *testing.T) *recordingHandler {
	t.Helper()
	prev := slog.Default()
	h := &recordingHandler{}
	slog.SetDefault(slog.New(h))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return h
}

func attrValue(r slog.Record, key string) string {
	value := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			return false
		}
		return true
	})
	return value
}

func TestLogSheetOp(t *testing.T) {
	h := capture(t)

	LogSheetOp("fetch", "Quests", 5*time.Millisecond, nil)
	LogSheetOp("update", "Sectors", time.Millisecond, errors.New("quota"))

	if len(h.records) != 2 {
		t.Fatalf("records = %d, want 2", len(h.records))
	}
	ok := h.records[0]
	if ok.Level != slog.LevelDebug {
		t.Errorf("success level = %v, want Debug", ok.Level)
	}
	if got := attrValue(ok, "op"); got != "fetch" {
		t.Errorf("op = %q, want fetch", got)
	}
	if got := attrValue(ok, "table"); got != "Quests" {
		t.Errorf("table = %q, want Quests", got)
	}
	if got := attrValue(ok, "type"); got != "sheet" {
		t.Errorf("type = %q, want sheet", got)
	}

	failed := h.records[1]
	if failed.Level != slog.LevelError {
		t.Errorf("failure level = %v, want Error", failed.Level)
	}
	if got := attrValue(failed, "error"); got != "quota" {
		t.Errorf("error attr = %q, want quota", got)
	}
}

func TestLogSystemAndError(t *testing.T) {
	h := capture(t)

	LogSystem("booted", slog.String("addr", ":8080"))
	LogError("sync failed", errors.New("offline"))

	if len(h.records) != 2 {
		t.Fatalf("records = %d, want 2", len(h.records))
	}
	if got := attrValue(h.records[0], "type"); got != "sys" {
		t.Errorf("system type = %q, want sys", got)
	}
	if got := attrValue(h.records[1], "error"); got != "offline" {
		t.Errorf("error attr = %q, want offline", got)
	}
}
