package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	log := WithComponent("convert")
	log.Info().Msg("starting")

	if !strings.Contains(buf.String(), `"component":"convert"`) {
		t.Errorf("log output = %q, want component field", buf.String())
	}
}

func TestBatchTracker(t *testing.T) {
	var buf bytes.Buffer
	bt := NewBatchTracker(2, zerolog.New(&buf))

	bt.RecordCompletion("A.DBF", 100, 1, 50*time.Millisecond)
	bt.RecordFailure("B.DBF", errors.New("boom"))
	bt.LogSummary()

	out := buf.String()
	if !strings.Contains(out, `"dbf":"A.DBF"`) || !strings.Contains(out, `"rows":100`) {
		t.Errorf("completion line missing: %q", out)
	}
	if !strings.Contains(out, `"dbf":"B.DBF"`) || !strings.Contains(out, "boom") {
		t.Errorf("failure line missing: %q", out)
	}
	if !strings.Contains(out, `"converted":1`) || !strings.Contains(out, `"failed":1`) {
		t.Errorf("summary line missing: %q", out)
	}
	if bt.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", bt.Failed())
	}
}
