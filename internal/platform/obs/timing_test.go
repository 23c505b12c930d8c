package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)

	ctx := WithRequestID(context.Background(), "abc-123")
	err := errors.New("boom")
	Time(ctx, "routes.Find")(&err)

	line := buf.String()
	if !strings.Contains(line, "req_id=abc-123") {
		t.Fatalf("log line %q missing request id", line)
	}
	if !strings.Contains(line, "op=routes.Find") {
		t.Fatalf("log line %q missing op", line)
	}
	if !strings.Contains(line, "err=boom") {
		t.Fatalf("log line %q missing error", line)
	}
}

func TestTimeWithNilErrorPointer(t *testing.T) {
	buf := captureLog(t)

	Time(context.Background(), "stats.BusStat")(nil)

	if strings.Contains(buf.String(), "err=") {
		t.Fatalf("unexpected error field in %q", buf.String())
	}
}
