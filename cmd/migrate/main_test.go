package main

import "testing"

func TestDescriptionFromFilename(t *testing.T) {
	cases := map[string]string{
		"2026-10-01-003-create-food-logs.sql":  "create food logs",
		"2026-10-01-001-create-migrations.sql": "create migrations",
		"seed.sql":                             "seed",
	}
	for in, want := range cases {
		if got := descriptionFromFilename(in); got != want {
			t.Errorf("descriptionFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPending(t *testing.T) {
	files := []string{"db/001-a.sql", "db/002-b.sql", "db/003-c.sql"}
	got := pending(files, map[string]bool{"002-b.sql": true})
	if len(got) != 2 || got[0] != "db/001-a.sql" || got[1] != "db/003-c.sql" {
		t.Errorf("pending = %v", got)
	}
}
