package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"playbeat/internal/logging"
)

func TestTeeHandlerRespectsPerHandlerLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoHandler := slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(logging.TeeHandler(infoHandler, nil, debugHandler))
	logger.Debug("debug only")
	logger.Info("everyone")

	if strings.Contains(infoBuf.String(), "debug only") {
		t.Fatalf("info handler received debug record: %q", infoBuf.String())
	}
	if !strings.Contains(infoBuf.String(), "everyone") {
		t.Fatalf("info handler missing info record: %q", infoBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "debug only") || !strings.Contains(debugBuf.String(), "everyone") {
		t.Fatalf("debug handler missing records: %q", debugBuf.String())
	}
}

func TestTeeHandlerWithAttrsReachesAllHandlers(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(logging.TeeHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)).With(logging.String(logging.FieldComponent, "site"))

	logger.Info("rendered")

	for name, buf := range map[string]*bytes.Buffer{"a": &a, "b": &b} {
		if !strings.Contains(buf.String(), "component=site") {
			t.Fatalf("handler %s missing component attr: %q", name, buf.String())
		}
	}
}

func TestTeeHandlerWithoutHandlersDiscards(t *testing.T) {
	if _, ok := logging.TeeHandler().(logging.NoopHandler); !ok {
		t.Fatal("expected NoopHandler when no handlers supplied")
	}
}
