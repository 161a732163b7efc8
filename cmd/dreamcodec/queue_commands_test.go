package main

import (
	"strings"
	"testing"
)

func TestAddAndQueueList(t *testing.T) {
	env := setupCLITestEnv(t)
	movie := env.mediaFile(t, "movie.mp4")

	out, _, err := runCLI(t, env.configPath, "add", movie)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Added 1 file(s)")

	out, _, err = runCLI(t, env.configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "movie")
}

func TestAddSkipsDuplicatesAndUnsupported(t *testing.T) {
	env := setupCLITestEnv(t)
	movie := env.mediaFile(t, "movie.mkv")
	notes := env.mediaFile(t, "notes.txt")

	if _, _, err := runCLI(t, env.configPath, "add", movie); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "add", movie, notes)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	requireContains(t, out, "Added 0 file(s)")
	requireContains(t, out, "Skipped 2 file(s)")
}

func TestQueueRemoveAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	first := env.mediaFile(t, "first.mp4")
	second := env.mediaFile(t, "second.mp4")

	if _, _, err := runCLI(t, env.configPath, "add", first, second); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "queue", "remove", "1")
	if err != nil {
		t.Fatalf("queue remove: %v", err)
	}
	requireContains(t, out, "Removed queue entry 1")

	out, _, err = runCLI(t, env.configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if strings.Contains(out, "first") {
		t.Fatalf("expected first to be removed, got %q", out)
	}

	if _, _, err := runCLI(t, env.configPath, "queue", "clear"); err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	out, _, err = runCLI(t, env.configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list after clear: %v", err)
	}
	requireContains(t, out, "Queue is empty")
}

func TestQueueRemoveUnknownID(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "queue", "remove", "42")
	if err == nil {
		t.Fatal("expected error for unknown queue id")
	}
	requireContains(t, err.Error(), "no queue entry with id 42")
}

func TestQueueListJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	movie := env.mediaFile(t, "movie.webm")

	if _, _, err := runCLI(t, env.configPath, "add", movie); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "--json", "queue", "list")
	if err != nil {
		t.Fatalf("queue list --json: %v", err)
	}
	requireContains(t, out, `"source_path"`)
	requireContains(t, out, "movie.webm")
}
