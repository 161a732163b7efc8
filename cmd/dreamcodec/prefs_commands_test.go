package main

import (
	"testing"
)

func TestPrefsShowDefaults(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "prefs", "show")
	if err != nil {
		t.Fatalf("prefs show: %v", err)
	}
	requireContains(t, out, "(automatic)")
	requireContains(t, out, "auto")
	requireContains(t, out, "100%")
}

func TestPrefsSetPersists(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "prefs", "set",
		"--encoder", "libx265", "--cpu-limit", "50", "--max-concurrent", "3")
	if err != nil {
		t.Fatalf("prefs set: %v", err)
	}
	requireContains(t, out, "Preferences updated")

	out, _, err = runCLI(t, env.configPath, "prefs", "show")
	if err != nil {
		t.Fatalf("prefs show: %v", err)
	}
	requireContains(t, out, "libx265")
	requireContains(t, out, "50%")
	requireContains(t, out, "3")
}

func TestPrefsSetClampsOutOfRange(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.configPath, "prefs", "set", "--max-concurrent", "99", "--cpu-limit", "33"); err != nil {
		t.Fatalf("prefs set: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "--json", "prefs", "show")
	if err != nil {
		t.Fatalf("prefs show: %v", err)
	}
	requireContains(t, out, `"max_concurrent": 2`)
	requireContains(t, out, `"cpu_limit_percent": 100`)
}

func TestPrefsSetRequiresAtLeastOneFlag(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "prefs", "set")
	if err == nil {
		t.Fatal("expected error when no flags given")
	}
	requireContains(t, err.Error(), "nothing to change")
}
