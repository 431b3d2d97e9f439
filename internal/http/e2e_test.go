package http

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strconv"
	"testing"
	"time"
)

const startTimeEnv = "E2E_TEST_START_TIME"

// TestMain records when the suite started and reports how long it ran.
func TestMain(m *testing.M) {
	start := time.Now()
	_ = os.Setenv(startTimeEnv, strconv.FormatInt(start.UnixMilli(), 10))

	code := m.Run()

	if v := os.Getenv(startTimeEnv); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			fmt.Printf("http suite finished in %s\n", time.Since(time.UnixMilli(ms)).Round(time.Millisecond))
		}
	}
	_ = os.Unsetenv(startTimeEnv)
	os.Exit(code)
}

var titlePattern = regexp.MustCompile(`<title>([^<]*)</title>`)

func TestEndToEndHomePageTitle(t *testing.T) {
	if os.Getenv(startTimeEnv) == "" {
		t.Fatalf("%s not set by TestMain", startTimeEnv)
	}

	srv := newTestServer(t, sampleStore(), nil)
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	m := titlePattern.FindSubmatch(body)
	if m == nil {
		t.Fatal("page has no title")
	}
	if !regexp.MustCompile(`Melking`).Match(m[1]) {
		t.Fatalf("title %q does not match /Melking/", m[1])
	}
	if !regexp.MustCompile(`<body[\s>]`).Match(body) {
		t.Error("page has no body")
	}
	if !regexp.MustCompile(`class="finance-summary"`).Match(body) {
		t.Error("summary card not rendered")
	}
}
