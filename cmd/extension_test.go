package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script needs a POSIX shell")
	}
	dir := setup(t, "")
	out := filepath.Join(dir, "env.txt")
	script := "#!/bin/sh\n" +
		"echo \"$" + EnvYear + "|$" + EnvReportFile + "|$" + EnvLedgerFile + "|$" + EnvVerbose + "|$1\" > " + out + "\n" +
		"exit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "glr-hello"), []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write extension: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ran, code := RunExtension("hello", []string{"world"})
	if !ran || code != 3 {
		t.Fatalf("RunExtension() = %v, %d, want true, 3", ran, code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not run: %v", err)
	}
	want := strings.Join([]string{"2022", ReportPath(), LedgerPath(), "false", "world"}, "|")
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("extension environment = %q, want %q", strings.TrimSpace(string(got)), want)
	}

	if ran, _ := RunExtension("nope-does-not-exist", nil); ran {
		t.Errorf("RunExtension() ran a missing extension")
	}
}

func TestRegistered(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("glr", flag.ContinueOnError), "glr")
	Register(c)
	if !Registered(c, "parse") {
		t.Errorf("Registered(parse) = false")
	}
	if Registered(c, "hello") {
		t.Errorf("Registered(hello) = true")
	}
}
