package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"dsn", "postgres://u:p@h/db", "lname", "Bunny", "trailing"})
	want := []interface{}{"dsn", "[REDACTED]", "lname", "Bunny", "trailing"}
	if len(got) != len(want) {
		t.Fatalf("len: want=%d got=%d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kv[%d]: want=%v got=%v", i, want[i], got[i])
		}
	}
}

func TestParseLevel(t *testing.T) {
	if lvl := parseLevel("warn", zapcore.DebugLevel); lvl != zapcore.WarnLevel {
		t.Fatalf("parseLevel(warn): got %v", lvl)
	}
	if lvl := parseLevel("nonsense", zapcore.InfoLevel); lvl != zapcore.InfoLevel {
		t.Fatalf("parseLevel(nonsense): got %v", lvl)
	}
	if lvl := parseLevel("", zapcore.ErrorLevel); lvl != zapcore.ErrorLevel {
		t.Fatalf("parseLevel(empty): got %v", lvl)
	}
}

func TestNewTestModeIsSilent(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("service", "x").Info("hello", "password", "pw")
	log.Sync()
}
