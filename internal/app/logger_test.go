package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("debug", "text", &buf)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug record missing: %q", buf.String())
	}

	buf.Reset()
	logger = newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"shown"`) {
		t.Errorf("warn-level json output = %q", out)
	}
}

func TestNewLogger_UnknownValuesFallBack(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("chatty", "yaml", &buf)
	logger.Debug("suppressed")
	logger.Info("kept")
	out := buf.String()
	if strings.Contains(out, "suppressed") || !strings.Contains(out, "kept") {
		t.Errorf("fallback output = %q", out)
	}
}
