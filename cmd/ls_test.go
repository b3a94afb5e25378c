package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stratohq/strato/internal/link"
	"github.com/stratohq/strato/pkg/models"
)

// exitSentinel carries the code through the osExit swap so runLs unwinds
// without killing the test process.
type exitSentinel int

type lsResult struct {
	stdout string
	stderr string
	code   int
	exited bool
}

func runLsTest(t *testing.T, args []string) lsResult {
	t.Helper()

	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	prevExit := osExit
	prevStdout, prevStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	osExit = func(code int) {
		panic(exitSentinel(code))
	}

	res := lsResult{code: -1}
	func() {
		defer func() {
			if r := recover(); r != nil {
				code, ok := r.(exitSentinel)
				if !ok {
					panic(r)
				}
				res.exited = true
				res.code = int(code)
			}
		}()
		runLs(lsCmd, args)
	}()

	osExit = prevExit
	os.Stdout, os.Stderr = prevStdout, prevStderr
	outW.Close()
	errW.Close()
	out, _ := io.ReadAll(outR)
	errOut, _ := io.ReadAll(errR)
	res.stdout = string(out)
	res.stderr = string(errOut)
	return res
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: change
// into dir and restore the previous working directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func resetLsFlags(t *testing.T) {
	t.Helper()
	lsAll = false
	lsMeta = nil
	lsNext = ""
	flagToken = "tok_test"
	flagScope = ""
	flagLocalConfig = ""
	flagGlobalConfig = t.TempDir()
	t.Cleanup(func() {
		lsAll = false
		lsMeta = nil
		lsNext = ""
		flagToken = ""
		flagGlobalConfig = ""
	})
}

// deploymentsServer serves a fixed response body and counts requests, so
// tests can assert which paths never reach the network.
func deploymentsServer(t *testing.T, body string) *int {
	t.Helper()
	requests := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("STRATO_API_URL", srv.URL)
	return requests
}

const threeDeploymentsBody = `{
	"deployments": [
		{"url": "a-one.strato.app", "name": "a", "state": "READY", "createdAt": 300},
		{"url": "a-two.strato.app", "name": "a", "state": "READY", "createdAt": 200},
		{"url": "b-one.strato.app", "name": "b", "state": "READY", "createdAt": 250}
	],
	"pagination": {"count": 3, "next": 200}
}`

func TestLs_LatestPerProjectByDefault(t *testing.T) {
	resetLsFlags(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, link.Write(dir, models.Link{Org: "acme"}))
	deploymentsServer(t, threeDeploymentsBody)

	res := runLsTest(t, nil)
	require.False(t, res.exited, "stderr: %s", res.stderr)
	require.Contains(t, res.stdout, "==> deployments (2)")
	require.Contains(t, res.stdout, "a-one.strato.app")
	require.Contains(t, res.stdout, "b-one.strato.app")
	require.NotContains(t, res.stdout, "a-two.strato.app")
}

func TestLs_AllShowsEveryDeployment(t *testing.T) {
	resetLsFlags(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, link.Write(dir, models.Link{Org: "acme"}))
	deploymentsServer(t, threeDeploymentsBody)

	lsAll = true
	res := runLsTest(t, nil)
	require.False(t, res.exited, "stderr: %s", res.stderr)
	require.Contains(t, res.stdout, "==> deployments (3)")
	require.Contains(t, res.stdout, "a-one.strato.app")
	require.Contains(t, res.stdout, "a-two.strato.app")
	require.Contains(t, res.stdout, "b-one.strato.app")
}

func TestLs_AllKeepsAppFilter(t *testing.T) {
	resetLsFlags(t)
	chdir(t, t.TempDir())

	gotApp := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotApp = r.URL.Query().Get("app")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"deployments": [
				{"url": "a-one.strato.app", "name": "a", "state": "READY", "createdAt": 300},
				{"url": "a-two.strato.app", "name": "a", "state": "READY", "createdAt": 200}
			],
			"pagination": {"count": 2, "next": 200}
		}`)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("STRATO_API_URL", srv.URL)

	lsAll = true
	res := runLsTest(t, []string{"a"})
	require.False(t, res.exited, "stderr: %s", res.stderr)
	require.Equal(t, "a", gotApp)
	require.Contains(t, res.stdout, "a-two.strato.app")
}

func TestLs_UnlinkedWithoutAppPrintsHint(t *testing.T) {
	resetLsFlags(t)
	chdir(t, t.TempDir())
	requests := deploymentsServer(t, `{}`)

	res := runLsTest(t, nil)
	require.False(t, res.exited, "stderr: %s", res.stderr)
	require.Contains(t, res.stdout, "not linked")
	require.Contains(t, res.stdout, "strato link")
	require.Equal(t, 0, *requests)
}

func TestLs_NextRequiresNumber(t *testing.T) {
	resetLsFlags(t)
	chdir(t, t.TempDir())
	requests := deploymentsServer(t, `{}`)

	lsNext = "abc"
	res := runLsTest(t, nil)
	require.True(t, res.exited)
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "requires a numeric")
	require.Equal(t, 0, *requests)
}

func TestLs_AliasHostnameRejected(t *testing.T) {
	resetLsFlags(t)
	chdir(t, t.TempDir())
	requests := deploymentsServer(t, `{}`)

	res := runLsTest(t, []string{"myapp.strato.app"})
	require.True(t, res.exited)
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "only deployment hostnames are allowed, no aliases")
	require.Equal(t, 0, *requests)
}
