package cli_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okian/rosterlab/internal/cli"
)

const item = `{"name":"Jose Ramirez","ovr":76,"is_hitter":true,"contact_left":75,"contact_right":80,
	"power_left":65,"power_right":70,"plate_vision":70,"plate_discipline":80}`

const roster = `{"attribute_changes":[
	{"name":"Jose Ramirez","old_rank":74,"current_rank":76,"item":{"uuid":"abc123"}},
	{"name":"Ghost","old_rank":60,"current_rank":59}
]}`

func setup(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/item.json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "abc123" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(item))
	})
	mux.HandleFunc("/roster_update.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(roster))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("ROSTERLAB_CONFIG", "")
	t.Setenv("ROSTERLAB_API_BASE_URL", srv.URL)
	t.Setenv("ROSTERLAB_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("ROSTERLAB_REQUEST_DELAY_MS", "0")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRosterCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "roster", "12")
	require.NoError(t, err)
	require.Contains(t, out, "abc123")
	require.Contains(t, out, "Ghost")

	_, err = run(t, "roster", "twelve")
	require.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	dir := setup(t)

	out, err := run(t, "resolve", "abc123", "nope")
	require.NoError(t, err)
	require.Contains(t, out, "Jose Ramirez")
	require.Contains(t, out, "skipped")

	_, err = os.Stat(filepath.Join(dir, "cache", "player_abc123.json"))
	require.NoError(t, err)
}

func TestBuildCommand(t *testing.T) {
	dir := setup(t)
	stats := "Name,playerId,AVG,SLG,BB%,K%\nJosé Ramírez,608070,.280,.450,10%,20%\n"
	lhp := filepath.Join(dir, "lhp.csv")
	rhp := filepath.Join(dir, "rhp.csv")
	require.NoError(t, os.WriteFile(lhp, []byte(stats), 0o600))
	require.NoError(t, os.WriteFile(rhp, []byte(stats), 0o600))
	metricsPath := filepath.Join(dir, "rosterlab.prom")
	t.Setenv("ROSTERLAB_METRICS_PATH", metricsPath)

	outDir := filepath.Join(dir, "out")
	out, err := run(t, "build", "--update-id", "12", "--lhp", lhp, "--rhp", rhp, "--out", outDir)
	require.NoError(t, err)
	require.Contains(t, out, "External statistics match")
	require.Contains(t, out, "Hitters")

	raw, err := os.ReadFile(filepath.Join(outDir, "hitters.csv"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "contact_right_vs_rhp_avg")
	require.Contains(t, string(raw), "abc123")

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(prom), "rosterlab_pipeline")
}

func TestBuildCommandRequiresUpdateID(t *testing.T) {
	setup(t)

	_, err := run(t, "build")
	require.Error(t, err)
}
