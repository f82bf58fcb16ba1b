//go:build integration

package integration

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binary is the srcweave executable built by TestMain.
var binary string

// getProjectRoot returns the path to the srcweave project root
func getProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	// tests/integration/cli_test.go -> project root
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "srcweave-bin")
	if err != nil {
		panic(err)
	}
	binary = filepath.Join(dir, "srcweave")

	build := exec.Command("go", "build", "-o", binary, "./cmd/srcweave")
	build.Dir = getProjectRoot()
	if output, err := build.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		panic("build failed: " + string(output))
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func waitForLine(scanner *bufio.Scanner, timeout time.Duration) bool {
	done := make(chan bool, 1)
	go func() {
		done <- scanner.Scan()
	}()
	select {
	case ok := <-done:
		return ok
	case <-time.After(timeout):
		return false
	}
}

func startServe(t *testing.T) (io.WriteCloser, *bufio.Scanner) {
	t.Helper()
	cmd := exec.Command(binary, "serve")

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	t.Cleanup(func() {
		stdin.Close()
		cmd.Process.Kill()
		cmd.Wait()
	})

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	require.True(t, waitForLine(scanner, 30*time.Second), "should receive ready signal")
	return stdin, scanner
}

func TestServeIntegration_ReadySignal(t *testing.T) {
	_, scanner := startServe(t)

	var ready map[string]any
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &ready))
	assert.True(t, ready["success"].(bool))
	assert.Equal(t, "ready", ready["type"])
}

func TestServeIntegration_IndexThenRender(t *testing.T) {
	stdin, scanner := startServe(t)

	// "x" defined at [0,0] and used at [11,11] of "x := 1\n_ = x\n".
	index := `{"type":"index","payload":{"pairs":[{"occurrence":{"filename":"a.go","start":11,"end":11},` +
		`"definition":{"filename":"a.go","start":0,"end":0}}]}}` + "\n"
	_, err := stdin.Write([]byte(index))
	require.NoError(t, err)
	require.True(t, waitForLine(scanner, 30*time.Second), "should receive index response")

	var indexResp struct {
		Success bool `json:"success"`
		Data    struct {
			Definitions []map[string]any `json:"definitions"`
			Regions     []map[string]any `json:"regions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &indexResp))
	require.True(t, indexResp.Success)
	assert.Len(t, indexResp.Data.Definitions, 1)
	assert.Len(t, indexResp.Data.Regions, 1)

	render := `{"type":"render","payload":{"filename":"a.go","content":"x := 1\n_ = x\n","wrappers":[` +
		`{"prefix":{"offset":0,"text":"<a id=\"def-0\">"},"postfix":{"offset":0,"text":"</a>"}},` +
		`{"prefix":{"offset":11,"text":"<a href=\"#def-0\">"},"postfix":{"offset":11,"text":"</a>"}}]}}` + "\n"
	_, err = stdin.Write([]byte(render))
	require.NoError(t, err)
	require.True(t, waitForLine(scanner, 30*time.Second), "should receive render response")

	var renderResp struct {
		Success bool `json:"success"`
		Data    struct {
			HTML string `json:"html"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &renderResp))
	require.True(t, renderResp.Success)
	assert.Equal(t, "<a id=\"def-0\">x</a> := 1\n_ = <a href=\"#def-0\">x</a>\n", renderResp.Data.HTML)
}

func TestServeIntegration_CloseCommand(t *testing.T) {
	cmd := exec.Command(binary, "serve")
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	_, err = stdin.Write([]byte(`{"type":"close","payload":{}}` + "\n"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(30 * time.Second):
		cmd.Process.Kill()
		t.Fatal("serve did not exit after close")
	}
}

func TestGenerateIntegration_SelfHosting(t *testing.T) {
	// Render this module's own types package into a database, then export it.
	tmp := t.TempDir()
	db := filepath.Join(tmp, "site.db")
	out := filepath.Join(tmp, "site")

	generate := exec.Command(binary, "generate", getProjectRoot(), "-q",
		"--output", db, "--pattern", "./pkg/types", "--format", "json")
	output, err := generate.Output()
	require.NoError(t, err)

	var result struct {
		Files    int              `json:"files"`
		Failures []map[string]any `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(output, &result))
	assert.Positive(t, result.Files)
	assert.Empty(t, result.Failures)

	export := exec.Command(binary, "export", db, out)
	exportOut, err := export.CombinedOutput()
	require.NoError(t, err, string(exportOut))

	page, err := os.ReadFile(filepath.Join(out, "pkg", "types", "source.go.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `href="interval.go.html#def-`)
	assert.FileExists(t, filepath.Join(out, "index.html"))
}
