package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSeedCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "seed.db")

	out := run(t, "sample", "--sqlite", db)
	assert.Contains(t, out, "sample: 5 available, 5 imported, 0 skipped, 0 failed")

	out = run(t, "sample", "--sqlite", db)
	assert.Contains(t, out, "5 skipped")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response_code":0,"results":[
			{"difficulty":"hard","question":"What does &quot;GPU&quot; stand for?",
			 "correct_answer":"Graphics Processing Unit",
			 "incorrect_answers":["General Processing Unit","Graphical Parallel Unit","Global Program Utility"]}
		]}`))
	}))
	defer srv.Close()

	out = run(t, "opentdb", "--sqlite", db, "--url", srv.URL)
	assert.Contains(t, out, "opentdb: 1 available, 1 imported")

	out = run(t, "retrain", "--sqlite", db)
	assert.Contains(t, out, "trained on 0 results")
}
