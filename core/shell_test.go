package core

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/seqsh/core/config"
	"github.com/josephlewis42/seqsh/core/logger"
	"github.com/sebdah/goldie/v2"
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

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Input        string
	ExpectedCode int
}

// Run feeds each input to a non-interactive shell and compares the combined
// output to a golden file.
func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			out := &bytes.Buffer{}
			s, err := NewShell(config.Default(), Options{
				Stdin:  strings.NewReader(tc.Input),
				Stdout: out,
				Stderr: out,
			})
			require.NoError(t, err)
			defer s.Close()

			code := s.Run()

			assert.Equal(t, tc.ExpectedCode, code, "exit code")
			g.Assert(t, tn, out.Bytes())
		})
	}
}

func TestShell_Run(t *testing.T) {
	requireBinaries(t, "echo", "true", "false")

	cases := goldenTestSuite{
		"echo":            {Input: "echo hello world\n"},
		"sequence":        {Input: "echo a; echo b\n"},
		"and-then":        {Input: "true && echo yes && false && echo no; echo after\n"},
		"blank-lines":     {Input: "echo one\n\n   \n\t\necho two\n"},
		"exit":            {Input: "echo before; exit; echo never\necho next line\n"},
		"exit-args":       {Input: "exit 3\n"},
		"empty-statement": {Input: "echo a;;echo b\necho c\n"},
		"spawn-error":     {Input: "seqsh-no-such-binary && echo never; echo recovered\n"},
		"no-newline":      {Input: "echo last"},
	}

	cases.Run(t)
}

func TestShell_RunLine(t *testing.T) {
	requireBinaries(t, "echo")

	out := &bytes.Buffer{}
	s, err := NewShell(config.Default(), Options{Stdin: strings.NewReader(""), Stdout: out, Stderr: out})
	require.NoError(t, err)
	defer s.Close()

	code, exited := s.RunLine("   ")
	assert.False(t, exited)
	assert.Equal(t, 0, code)

	code, exited = s.RunLine("echo hi && exit")
	assert.True(t, exited)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hi\n", out.String())
}

func TestShell_eventLog(t *testing.T) {
	requireBinaries(t, "echo", "false")

	cfg := config.Default()
	cfg.EventLog = true

	out := &bytes.Buffer{}
	s, err := NewShell(cfg, Options{
		Stdin:  strings.NewReader("echo a; false\nseqsh-no-such-binary\nexit\n"),
		Stdout: out,
		Stderr: out,
		Source: "test",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, s.Run())
	require.NoError(t, s.Close())
	assert.NotEmpty(t, s.SessionID())

	fd, err := cfg.ReadEventLog()
	require.NoError(t, err)
	defer fd.Close()

	var report logger.Report
	interactions := &logger.InteractionReport{}
	require.NoError(t, logger.ReadJSONLinesLog(fd, func(le *logger.LogEntry) {
		assert.Equal(t, s.SessionID(), le.GetSessionID())
		report.Update(le)
		interactions.Update(le)
	}))

	assert.Equal(t, 6, report.LogEntries)
	assert.Equal(t, 1, report.Session.Started)
	assert.Equal(t, 1, report.Session.Closed)
	assert.Equal(t, 1, report.Session.Sources.Get("test"))
	assert.Equal(t, 1, report.RunCommand.CommandNames.Get("echo"))
	assert.Equal(t, 1, report.RunCommand.Failures.Get("false"))
	assert.Equal(t, 1, report.RunBuiltin.CommandNames.Get("exit"))
	assert.Equal(t, []string{"echo a", "false", "seqsh-no-such-binary", "exit"}, interactions.Commands(s.SessionID()))
}

func TestShell_Prompt(t *testing.T) {
	cfg := config.Default()

	t.Run("default", func(t *testing.T) {
		s, err := NewShell(cfg, Options{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.Equal(t, "> ", s.Prompt())
	})

	t.Run("colored", func(t *testing.T) {
		colorCfg := *cfg
		colorCfg.Color = config.ColorAlways
		colorCfg.Prompt = "$ "

		s, err := NewShell(&colorCfg, Options{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}})
		require.NoError(t, err)
		assert.Contains(t, s.Prompt(), "\x1b[")
		assert.Contains(t, s.Prompt(), "$ ")
	})
}

func TestShell_Run_longLine(t *testing.T) {
	requireBinaries(t, "echo")

	out := &bytes.Buffer{}
	input := "seqsh-no-such-binary " + strings.Repeat("a", 2*1024*1024) + "\necho after\n"
	s, err := NewShell(config.Default(), Options{Stdin: strings.NewReader(input), Stdout: out, Stderr: out})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 0, s.Run())
	assert.Contains(t, out.String(), `exec: "seqsh-no-such-binary"`)
	assert.True(t, strings.HasSuffix(out.String(), "after\n"), "later lines still run")
}

func TestShell_errorColor(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	s, err := NewShell(config.Default(), Options{Stdin: strings.NewReader(""), Stdout: stdout, Stderr: stderr})
	require.NoError(t, err)
	defer s.Close()

	// Stdout is a terminal but stderr is redirected.
	s.Color = &ColorPrinter{mode: config.ColorAuto, isTerminal: true}

	s.RunLine("seqsh-no-such-binary")

	assert.Contains(t, s.Prompt(), "\x1b[")
	assert.Equal(t, "exec: \"seqsh-no-such-binary\": executable file not found in $PATH\n", stderr.String())
}
