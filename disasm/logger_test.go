package disasm

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerDecoded(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	if _, err := Decode([]uint16{0x53d0, 0x0064, 0x000e}); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	entries := logs.FilterMessage("decoded").All()
	if len(entries) != 1 {
		t.Fatalf("got %d decoded entries, want 1", len(entries))
	}
	e := entries[0]
	if e.LoggerName != "disasm" {
		t.Errorf("logger name = %q, want disasm", e.LoggerName)
	}
	fields := e.ContextMap()
	if fields["units"] != int64(3) || fields["lines"] != int64(2) {
		t.Errorf("fields = %v, want units=3 lines=2", fields)
	}

	SetLogger(nil)
	if Logger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Logger() after SetLogger(nil) should be a no-op logger")
	}
}
