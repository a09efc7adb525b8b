package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBinaries(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not available: %v", name, err)
		}
	}
}

// executeCommand runs the root command with args and stdin, returning the
// combined output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	commandLine = ""
	var exitCodes []int
	osExit = func(code int) {
		exitCodes = append(exitCodes, code)
	}
	defer func() {
		osExit = os.Exit
	}()

	buf := &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	assert.Empty(t, exitCodes, "unexpected exit")
	return buf.String(), err
}

func TestRoot_command(t *testing.T) {
	requireBinaries(t, "echo", "false")
	configDir := t.TempDir()

	out, err := executeCommand(t, "", "--config", configDir, "-c", "echo hello && echo world; false && echo never")

	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", out)
}

func TestRoot_commandExit(t *testing.T) {
	requireBinaries(t, "echo")

	out, err := executeCommand(t, "echo ignored\n", "--config", t.TempDir(), "-c", "echo bye; exit; echo never")

	require.NoError(t, err)
	assert.Equal(t, "bye\n", out)
}

func TestRoot_stdin(t *testing.T) {
	requireBinaries(t, "echo")

	out, err := executeCommand(t, "echo piped\n\necho again\n", "--config", t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "piped\nagain\n", out)
}

func TestRoot_script(t *testing.T) {
	requireBinaries(t, "echo")
	script := filepath.Join(t.TempDir(), "script.seqsh")
	require.NoError(t, os.WriteFile(script, []byte("echo from script\nexit\necho never\n"), 0600))

	out, err := executeCommand(t, "", "--config", t.TempDir(), script)

	require.NoError(t, err)
	assert.Equal(t, "from script\n", out)
}

func TestRoot_scriptMissing(t *testing.T) {
	_, err := executeCommand(t, "", "--config", t.TempDir(), filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
}

func TestRoot_commandAndScript(t *testing.T) {
	_, err := executeCommand(t, "", "--config", t.TempDir(), "-c", "echo", "script")

	assert.EqualError(t, err, "can't use -c with a script")
}

func TestBuiltins(t *testing.T) {
	out, err := executeCommand(t, "", "builtins")

	require.NoError(t, err)
	assert.Equal(t, "exit\n", out)
}

func TestParse(t *testing.T) {
	out, err := executeCommand(t, "", "parse", "echo 1 && ls -l; exit")

	require.NoError(t, err)
	assert.Equal(t, `";"
  "&&"
    invoke "echo" ["1"]
    invoke "ls" ["-l"]
  builtin exit
`, out)
}

func TestParse_empty(t *testing.T) {
	_, err := executeCommand(t, "", "parse", "echo ;; ls")

	assert.Error(t, err)
}

func TestInitAndEventsReport(t *testing.T) {
	requireBinaries(t, "echo", "false")
	configDir := filepath.Join(t.TempDir(), "config")

	out, err := executeCommand(t, "", "--config", configDir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Writing default config.yaml")

	configPath := filepath.Join(configDir, "config.yaml")
	contents, err := os.ReadFile(configPath)
	require.NoError(t, err)
	enabled := strings.Replace(string(contents), "event_log: false", "event_log: true", 1)
	require.NoError(t, os.WriteFile(configPath, []byte(enabled), 0600))

	_, err = executeCommand(t, "", "--config", configDir, "-c", "echo a && false; seqsh-no-such-binary")
	require.NoError(t, err)

	out, err = executeCommand(t, "", "--config", configDir, "events", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "log_entries: 5")
	assert.Contains(t, out, "echo: 1")
	assert.Contains(t, out, "seqsh-no-such-binary")

	out, err = executeCommand(t, "", "--config", configDir, "events", "sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "- echo a")
	assert.Contains(t, out, "- seqsh-no-such-binary")
}
