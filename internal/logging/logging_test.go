package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug("loading tasks", "url", "http://localhost:5000/api")

	got := buf.String()
	if !strings.Contains(got, "level=DEBUG") || !strings.Contains(got, `msg="loading tasks"`) {
		t.Errorf("unexpected log output: %q", got)
	}
}

func TestNew_NotDebugDiscards(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Warn("request failed")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
