package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME at a fresh temp directory and chdirs into another,
// so config/log file operations in a test never touch the real machine.
func isolate(t *testing.T) (home, workdir string) {
	t.Helper()

	home = t.TempDir()
	workdir = t.TempDir()

	origHome := os.Getenv("HOME")
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("HOME", home)
	if err := os.Chdir(workdir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origWd)
		_ = os.Setenv("HOME", origHome)
	})
	return home, workdir
}

// runRoot executes the root command with args, returning combined stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	SetOut(&buf)
	t.Cleanup(func() { SetOut(os.Stdout) })

	// Flags bind to package vars that outlive a single Execute call; reset
	// them so one test's flags don't leak into the next.
	output = ""
	local = false
	parseDBPath = ""

	root := RootCmd()
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(&buf)
	err := root.Execute()
	return buf.String(), err
}

func localConfigPath(workdir string) string {
	return filepath.Join(workdir, ".svnparse", "config.yaml")
}
