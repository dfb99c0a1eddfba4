package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the developer's config and environment out of the command.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, key := range []string{"CASEASSIST_BACKEND_URL", "BACKEND_URL", "NEXT_PUBLIC_BACKEND_URL"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fakeServer(t *testing.T, status int, body any) (*httptest.Server, *[]string) {
	t.Helper()
	var inputs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		inputs = append(inputs, r.URL.Path+" "+req.Input)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &inputs
}

func TestAskPrintsAdviceAndSources(t *testing.T) {
	isolate(t)
	srv, inputs := fakeServer(t, http.StatusOK, map[string]any{
		"result":  "Stay **calm**.\nWrite it down.",
		"sources": []string{"a.pdf", "a.pdf", "b.pdf"},
	})

	out, err := runCLI(t, "ask", "--backend-url", srv.URL, "--log-level", "off", "  <i>deposit</i>", "dispute  ")
	require.NoError(t, err)

	assert.Equal(t, []string{"/ask deposit dispute"}, *inputs)
	assert.Contains(t, out, "Stay calm.\nWrite it down.")
	assert.Contains(t, out, "Sources:\n  - a.pdf\n  - b.pdf\n")
}

func TestAskHTML(t *testing.T) {
	isolate(t)
	srv, _ := fakeServer(t, http.StatusOK, map[string]any{"result": "Use **care** & <b>caution</b>"})

	out, err := runCLI(t, "ask", "--html", "--backend-url", srv.URL, "--log-level", "off", "question")
	require.NoError(t, err)
	assert.Equal(t, "Use <strong>care</strong> &amp; &lt;b&gt;caution&lt;/b&gt;\n", out)
}

func TestAskBackendError(t *testing.T) {
	isolate(t)
	srv, _ := fakeServer(t, http.StatusInternalServerError, map[string]string{"error": "model offline"})

	_, err := runCLI(t, "ask", "--backend-url", srv.URL, "--log-level", "off", "question")
	require.Error(t, err)
	assert.Equal(t, "Something went wrong. model offline", err.Error())
}

func TestAskRejectsBlankInput(t *testing.T) {
	isolate(t)
	srv, inputs := fakeServer(t, http.StatusOK, map[string]string{"result": "unused"})

	_, err := runCLI(t, "ask", "--backend-url", srv.URL, "--log-level", "off", "<br>", "  ")
	require.EqualError(t, err, "Input cannot be empty.")
	assert.Empty(t, *inputs)
}

func TestSearchPrintsHits(t *testing.T) {
	isolate(t)
	long := strings.Repeat("x", 450)
	srv, inputs := fakeServer(t, http.StatusOK, map[string]any{
		"results": []map[string]any{
			{"pageContent": "See https://example.com/a for details", "source": "one.pdf"},
			{"source": "missing-content.pdf"},
			{"pageContent": long, "source": "two.pdf"},
		},
	})

	out, err := runCLI(t, "search", "--backend-url", srv.URL, "--log-level", "off", "lease")
	require.NoError(t, err)
	assert.Equal(t, []string{"/search lease"}, *inputs)
	assert.Contains(t, out, "[1] See https://example.com/a for details\n    Source: one.pdf\n")
	assert.Contains(t, out, "[2] "+strings.Repeat("x", 400)+"...\n    Source: two.pdf\n")
	assert.NotContains(t, out, "missing-content.pdf")

	out, err = runCLI(t, "search", "--full", "--backend-url", srv.URL, "--log-level", "off", "lease")
	require.NoError(t, err)
	assert.Contains(t, out, "[2] "+long+"\n")
}

func TestSearchNoResults(t *testing.T) {
	isolate(t)
	srv, _ := fakeServer(t, http.StatusOK, map[string]any{"results": []any{}})

	_, err := runCLI(t, "search", "--backend-url", srv.URL, "--log-level", "off", "nothing")
	require.EqualError(t, err, "No results found.")
}

func TestMissingBackendURL(t *testing.T) {
	isolate(t)
	_, err := runCLI(t, "ask", "--log-level", "off", "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend URL is required")
}

func TestLegacyBackendEnv(t *testing.T) {
	isolate(t)
	srv, inputs := fakeServer(t, http.StatusOK, map[string]string{"result": "ok"})
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", srv.URL+"/")

	out, err := runCLI(t, "ask", "--log-level", "off", "question")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	assert.Equal(t, []string{"/ask question"}, *inputs)
}

func TestVersionNeedsNoConfig(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "caseassist dev\n", out)
}
