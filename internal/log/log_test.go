package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentSummary, Output: &buf})
	l.Info("rendered", FieldFilter, "all")

	out := buf.String()
	if !strings.Contains(out, "component=summary") || !strings.Contains(out, "filter=all") {
		t.Fatalf("unexpected log line: %s", out)
	}

	buf.Reset()
	l.WithComponent(ComponentHTTP).Info("x")
	if !strings.Contains(buf.String(), "component=http") || strings.Contains(buf.String(), "component=summary") {
		t.Fatalf("component not replaced: %s", buf.String())
	}
}

func TestFailureIncludesOperationAndError(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Output: &buf})
	l.Failure(context.Background(), "load failed", OpLoad, errors.New("boom"), NewFields().WithSummaryFilter("repair", "", "2023-01-01", ""))

	out := buf.String()
	for _, want := range []string{"level=ERROR", "operation=load", "error=boom", "filter=repair", "date_from=2023-01-01"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
	if strings.Contains(out, "date_to") {
		t.Fatalf("empty fields should be omitted: %s", out)
	}
}

func TestToSliceIsOrdered(t *testing.T) {
	got := NewFields().WithOperation("render").WithComponent("http").ToSlice()
	if len(got) != 4 || got[0] != FieldComponent || got[2] != FieldOperation {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestMiddlewareAddsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: slog.LevelInfo, Output: &buf})
	h := Middleware(base.WithComponent(ComponentHTTP))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "component="+ComponentHTTP) {
		t.Fatalf("request logger missing: %s", buf.String())
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Fatalf("unexpected fallback logger: %+v", l)
	}
}
