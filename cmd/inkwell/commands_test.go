package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

// useTestClient points the CLI at the test server for the duration of the test.
func useTestClient(t *testing.T, ts *testServer) {
	t.Helper()
	orig := newAPIClient
	newAPIClient = func() (*apiClient, error) {
		return &apiClient{
			baseURL:    ts.server.URL,
			httpClient: &http.Client{Timeout: 5 * time.Second},
		}, nil
	}
	t.Cleanup(func() { newAPIClient = orig })
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestFlagSetSendsPut(t *testing.T) {
	ts := newTestServer(t, nil)
	useTestClient(t, ts)

	if err := runCLI(t, "flag", "set", "editor.autoIndent", "true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	r := ts.requests[0]
	if r.Method != "PUT" || r.Path != "/v1/flags/editor.autoIndent" {
		t.Errorf("request = %s %s, want PUT /v1/flags/editor.autoIndent", r.Method, r.Path)
	}

	var body map[string]bool
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body["value"] != true {
		t.Errorf("body.value = %v, want true", body["value"])
	}
}

func TestFlagSetRejectsNonBool(t *testing.T) {
	err := runCLI(t, "flag", "set", "editor.autoIndent", "maybe")
	if err == nil {
		t.Fatal("expected error for non-boolean value")
	}
	if !strings.Contains(err.Error(), "invalid value") {
		t.Errorf("error = %q, want it to mention 'invalid value'", err.Error())
	}
}

func TestFlagGetPrintsValue(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /v1/flags/editor.makeBackup": `{"name":"editor.makeBackup","value":true}`,
	})
	useTestClient(t, ts)

	if err := runCLI(t, "flag", "get", "editor.makeBackup"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.requests) != 1 || ts.requests[0].Path != "/v1/flags/editor.makeBackup" {
		t.Errorf("requests = %+v, want one GET of the flag", ts.requests)
	}
}

func TestFontSetStrideTargetsStridePath(t *testing.T) {
	ts := newTestServer(t, nil)
	useTestClient(t, ts)

	if err := runCLI(t, "font", "set", "--stride", "13"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	if ts.requests[0].Path != "/v1/font/stride" {
		t.Errorf("path = %q, want /v1/font/stride", ts.requests[0].Path)
	}
}

func TestFontSetRejectsNonInteger(t *testing.T) {
	if err := runCLI(t, "font", "set", "big"); err == nil {
		t.Fatal("expected error for non-integer size")
	}
}

func TestRecentAddPostsPath(t *testing.T) {
	ts := newTestServer(t, nil)
	useTestClient(t, ts)

	if err := runCLI(t, "recent", "add", "/home/me/project"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := ts.requests[0]
	if r.Method != "POST" || r.Path != "/v1/recent" {
		t.Errorf("request = %s %s, want POST /v1/recent", r.Method, r.Path)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body["path"] != "/home/me/project" {
		t.Errorf("body.path = %q, want /home/me/project", body["path"])
	}
}

func TestRecentAddRequiresPath(t *testing.T) {
	if err := runCLI(t, "recent", "add"); err == nil {
		t.Fatal("expected error for missing path argument")
	}
}

func TestStyleFamilyFlag(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /v1/style": `{"style":"font-size: 12pt;"}`,
	})
	useTestClient(t, ts)

	if err := runCLI(t, "style", "--family"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ts.requests[0].Path; got != "/v1/style?family=true" {
		t.Errorf("path = %q, want /v1/style?family=true", got)
	}
}
