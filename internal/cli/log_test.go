package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("loaded diagram") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("cloned presentation subtree") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cloned presentation subtree") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("cache unavailable") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("output written = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(5 * time.Millisecond)
	prog.done("Rendered chart.svg")

	out := buf.String()
	if !strings.Contains(out, "Rendered chart.svg") {
		t.Errorf("done output %q is missing the message", out)
	}
	if !strings.Contains(out, "s)") {
		t.Errorf("done output %q is missing the elapsed time", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("context did not return the attached logger")
	}

	logger.Debug("round trip")
	if buf.Len() == 0 {
		t.Error("attached logger wrote nothing")
	}
}

func TestLoggerFromBareContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("bare context must fall back to the default logger")
	}
}
