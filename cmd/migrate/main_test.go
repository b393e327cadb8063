package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDescriptionFromFilename(t *testing.T) {
	cases := map[string]string{
		"2026-10-01-004-create-daily-logs.sql": "create daily logs",
		"2026-10-01-001-create-migrations.sql": "create migrations",
		"seed.sql":                             "seed",
	}
	for in, want := range cases {
		if got := descriptionFromFilename(in); got != want {
			t.Errorf("descriptionFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPendingMigrations(t *testing.T) {
	files := []string{
		filepath.Join("db", "2026-10-01-003-create-sessions.sql"),
		filepath.Join("db", "2026-10-01-001-create-migrations.sql"),
		filepath.Join("db", "2026-10-01-002-create-users.sql"),
	}
	applied := map[string]bool{"2026-10-01-001-create-migrations.sql": true}

	got := pendingMigrations(files, applied)
	want := []string{
		filepath.Join("db", "2026-10-01-002-create-users.sql"),
		filepath.Join("db", "2026-10-01-003-create-sessions.sql"),
	}
	if len(got) != len(want) {
		t.Fatalf("pending = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pending[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if files[0] != filepath.Join("db", "2026-10-01-003-create-sessions.sql") {
		t.Error("input slice must not be reordered")
	}
}

func TestIsUndefinedTable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"missing table", &pgconn.PgError{Code: "42P01"}, true},
		{"wrapped missing table", fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"}), true},
		{"permission denied", &pgconn.PgError{Code: "42501"}, false},
		{"connection error", errors.New("connection reset by peer"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isUndefinedTable(tc.err); got != tc.want {
				t.Errorf("isUndefinedTable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestRootCmd(t *testing.T) {
	cmd := rootCmd()
	flag := cmd.Flags().Lookup("dir")
	if flag == nil || flag.DefValue != "db" {
		t.Fatalf("dir flag = %+v, want default db", flag)
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a positional argument")
	}
}
