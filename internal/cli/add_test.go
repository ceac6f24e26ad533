package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/aidanlsb/dotadr/internal/record"
)

func TestAddCreatesNextRecord(t *testing.T) {
	p := newProject(t)
	p.mustRun(t, "init")

	resp := p.mustRun(t, "add", "Use PostgreSQL for persistence")
	res := decode[addResult](t, resp.Data)

	if res.ID != "002" {
		t.Fatalf("ID = %q, want %q", res.ID, "002")
	}
	if res.File != "002-use-postgresql-for-persistence.md" {
		t.Fatalf("File = %q", res.File)
	}
	if res.Directory != "./doc/adr" {
		t.Fatalf("Directory = %q, want %q", res.Directory, "./doc/adr")
	}
	if res.Superseded != nil {
		t.Fatalf("Superseded = %+v, want nil", res.Superseded)
	}

	content := p.read(t, "doc", "adr", res.File)
	want := "# 002 Use PostgreSQL for persistence\n\n* Status: Draft\n* Date: 2025-03-14 \n\n## Context\n\n## Decision\n\n## Consequences\n"
	if content != want {
		t.Fatalf("record content = %q, want %q", content, want)
	}
}

func TestAddJoinsTitleWordsAndNewAlias(t *testing.T) {
	p := newProject(t)
	p.mustRun(t, "init")

	resp := p.mustRun(t, "new", "Adopt", "gRPC")
	res := decode[addResult](t, resp.Data)
	if res.Title != "Adopt gRPC" || res.File != "002-adopt-grpc.md" {
		t.Fatalf("add result = %+v", res)
	}
}

func TestAddSupersedes(t *testing.T) {
	p := newProject(t)
	p.mustRun(t, "init")
	p.mustRun(t, "add", "Use MySQL")

	resp := p.mustRun(t, "add", "Use PostgreSQL", "--supersedes", "002")
	res := decode[addResult](t, resp.Data)
	if res.Superseded == nil || res.Superseded.File != "002-use-mysql.md" {
		t.Fatalf("Superseded = %+v", res.Superseded)
	}

	newer := p.read(t, "doc", "adr", "003-use-postgresql.md")
	if !strings.Contains(newer, "* Supersedes: [002](002-use-mysql.md)\n") {
		t.Fatalf("new record lacks supersedes link:\n%s", newer)
	}

	older := p.read(t, "doc", "adr", "002-use-mysql.md")
	wantStatus := "* Status: Draft - Superseded by [003](003-use-postgresql.md) on 2025-03-14\n"
	if !strings.Contains(older, wantStatus) {
		t.Fatalf("superseded record status not patched:\n%s", older)
	}
}

func TestAddSupersedesByPrefixIsCaseInsensitive(t *testing.T) {
	p := newProject(t)
	p.mustRun(t, "init")

	resp := p.mustRun(t, "add", "Second", "-s", "001-USE")
	res := decode[addResult](t, resp.Data)
	if res.Superseded == nil || res.Superseded.File != firstRecord {
		t.Fatalf("Superseded = %+v", res.Superseded)
	}
}

func TestAddErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, p *project)
		args  []string
		code  string
	}{
		{
			name:  "no configuration",
			setup: func(t *testing.T, p *project) {},
			args:  []string{"add", "Title"},
			code:  "CONFIG_MISSING",
		},
		{
			name:  "corrupt configuration",
			setup: func(t *testing.T, p *project) {
				p.write(t, "{not json", "dotadr.json")
			},
			args: []string{"add", "Title"},
			code: "CONFIG_CORRUPT",
		},
		{
			name:  "blank directory",
			setup: func(t *testing.T, p *project) {
				p.write(t, `{"directory": "  "}`, "dotadr.json")
			},
			args: []string{"add", "Title"},
			code: "CONFIG_INVALID",
		},
		{
			name:  "directory missing",
			setup: func(t *testing.T, p *project) {
				p.write(t, `{"directory": "./nowhere"}`, "dotadr.json")
			},
			args: []string{"add", "Title"},
			code: "DIRECTORY_NOT_FOUND",
		},
		{
			name:  "template missing",
			setup: func(t *testing.T, p *project) {
				p.mustRun(t, "init")
				if err := os.Remove(p.path("doc", "adr", "template.md")); err != nil {
					t.Fatal(err)
				}
			},
			args: []string{"add", "Title"},
			code: "TEMPLATE_NOT_FOUND",
		},
		{
			name:  "superseded record missing",
			setup: func(t *testing.T, p *project) {
				p.mustRun(t, "init")
			},
			args: []string{"add", "Title", "--supersedes", "042"},
			code: "SUPERSEDED_NOT_FOUND",
		},
		{
			name:  "no title",
			setup: func(t *testing.T, p *project) {},
			args:  []string{"add"},
			code:  "INVALID_INPUT",
		},
		{
			name:  "blank title",
			setup: func(t *testing.T, p *project) {
				p.mustRun(t, "init")
			},
			args: []string{"add", "   "},
			code: "INVALID_INPUT",
		},
		{
			name:  "title without usable characters",
			setup: func(t *testing.T, p *project) {
				p.mustRun(t, "init")
			},
			args: []string{"add", "???"},
			code: "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject(t)
			tt.setup(t, p)
			resp := p.mustFail(t, tt.code, tt.args...)
			if resp.Error.Message == "" {
				t.Fatal("error message is empty")
			}
		})
	}
}

func TestAddMissingSupersededWritesNothing(t *testing.T) {
	p := newProject(t)
	p.mustRun(t, "init")
	before := p.read(t, "doc", "adr", firstRecord)

	p.mustFail(t, "SUPERSEDED_NOT_FOUND", "add", "Replacement", "--supersedes", "9")

	entries, err := os.ReadDir(p.path("doc", "adr"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "002") {
			t.Fatalf("unexpected record %s", e.Name())
		}
	}
	if got := p.read(t, "doc", "adr", firstRecord); got != before {
		t.Fatal("first record changed")
	}
}

func TestAddFailsWhileDirectoryLocked(t *testing.T) {
	p := newProject(t)
	p.mustRun(t, "init")

	unlock, err := record.NewRepository().Lock(p.path("doc", "adr"))
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	p.mustFail(t, "DIRECTORY_LOCKED", "add", "Blocked")
	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	resp := p.mustRun(t, "add", "Unblocked")
	if res := decode[addResult](t, resp.Data); res.ID != "002" {
		t.Fatalf("ID = %q, want %q", res.ID, "002")
	}
}

func TestAddASCIISlugStyleFromSettings(t *testing.T) {
	p := newProject(t)
	p.write(t, "slug_style = \"ascii\"\n", "settings.toml")
	p.mustRun(t, "init")

	resp := p.mustRun(t, "add", "Café au lait")
	if res := decode[addResult](t, resp.Data); res.File != "002-cafe-au-lait.md" {
		t.Fatalf("File = %q, want %q", res.File, "002-cafe-au-lait.md")
	}
}

func TestAddConfigPathFromEnvironment(t *testing.T) {
	p := newProject(t)
	p.mustRun(t, "init")

	other := newProject(t)
	t.Setenv("DOTADR_CONFIG", p.config)

	resetFlags(rootCmd)
	var code int
	out := captureStdout(t, func() {
		code = run([]string{"--json", "--settings", other.settings, "add", "From env"})
	})
	if code != 0 {
		t.Fatalf("exit code = %d; out=%s", code, out)
	}
	p.read(t, "doc", "adr", "002-from-env.md")
}
