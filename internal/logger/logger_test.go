package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "info")

	log.Info().Str("category", "loyer").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"category":"loyer"`) {
		t.Errorf("Expected output to contain category field, got: %s", output)
	}
}

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := NewWithWriter(&bytes.Buffer{}, tt.level).GetLevel(); got != tt.want {
			t.Errorf("level %q: expected %v, got %v", tt.level, tt.want, got)
		}
	}

	buf := &bytes.Buffer{}
	warnLog := NewWithWriter(buf, "warn")
	warnLog.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got: %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, "info"))

	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("test")
	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}

	if FromContext(context.Background()).GetLevel() != zerolog.Disabled {
		t.Error("Expected disabled logger when none is in context")
	}
}
