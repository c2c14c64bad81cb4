package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lingocli/lingo/internal/config"
	"github.com/lingocli/lingo/internal/filter"
)

func TestMapResourceFiles(t *testing.T) {
	pattern := filter.Compile("translations/<lang>/core.po", "/ws")
	files := []string{
		"/ws/translations/el/core.po",
		"/ws/translations/pt_BR/core.po",
		"/ws/translations/el/other.po",
		"/ws/README.md",
	}

	byLang := mapResourceFiles(files, pattern)
	if len(byLang) != 2 {
		t.Fatalf("mapped %d languages, want 2: %v", len(byLang), byLang)
	}
	if byLang["el"] != "/ws/translations/el/core.po" {
		t.Errorf("el mapped to %q", byLang["el"])
	}
	if byLang["pt_BR"] != "/ws/translations/pt_BR/core.po" {
		t.Errorf("pt_BR mapped to %q", byLang["pt_BR"])
	}
}

func TestMapResourceFilesNoPlaceholder(t *testing.T) {
	pattern := filter.Compile("docs/manual.po", "/ws")
	byLang := mapResourceFiles([]string{"/ws/docs/manual.po", "/ws/docs/other.po"}, pattern)

	if len(byLang) != 1 {
		t.Fatalf("mapped %d entries, want 1: %v", len(byLang), byLang)
	}
	if byLang[""] != "/ws/docs/manual.po" {
		t.Errorf("literal filter mapped to %q", byLang[""])
	}
}

func TestAPIParams(t *testing.T) {
	project := &config.Project{Host: "https://app.example.com", Project: "website"}
	params := apiParams(project, config.Resource{Slug: "website.core"})

	if params["hostname"] != "https://app.example.com" {
		t.Errorf("hostname = %q", params["hostname"])
	}
	if params["project"] != "website" {
		t.Errorf("project = %q", params["project"])
	}
	if params["resource"] != "core" {
		t.Errorf("resource = %q, want the part after the dot", params["resource"])
	}
}

func TestRunStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/2/project/website/resource/core/":
			w.Write([]byte(`{"slug": "core", "name": "Core strings"}`))
		case "/api/2/project/website/resource/core/stats/":
			w.Write([]byte(`{"el": {"completed": "100%"}, "de": {"completed": "40%"}}`))
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	a, out := newTestApp(t)
	root := newWorkspaceDir(t)
	a.flags.workspace = root
	writeProject(t, root, &config.Project{
		Host:    server.URL,
		Project: "website",
		Resources: []config.Resource{
			{Slug: "website.core", FileFilter: "translations/<lang>/core.po", SourceLang: "en"},
		},
	})

	writeWorkspaceFile(t, root, "translations/el/core.po", []byte("msgid \"hi\"\nmsgstr \"γεια\"\n"))
	latin1 := "Le caf\xe9 pr\xe9par\xe9 \xe9tait d\xe9j\xe0 refroidi, r\xe9p\xe9tait-il. " +
		"La journ\xe9e enti\xe8re s'\xe9coulait \xe0 l'\xe9cole, pr\xe8s du mus\xe9e."
	writeWorkspaceFile(t, root, "translations/de/core.po", []byte(latin1))
	writeWorkspaceFile(t, root, "README.md", []byte("not a translation\n"))

	if err := a.runStatus(context.Background()); err != nil {
		t.Fatalf("runStatus() error = %v, want nil", err)
	}

	got := out.String()
	for _, want := range []string{
		"project website",
		"website.core",
		"el → translations/el/core.po",
		"de → translations/de/core.po",
		"2 local translation file(s)",
		"el 100% translated",
		"de 40% translated",
		"the server expects utf-8",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("status output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "README.md") {
		t.Errorf("status output lists an unmatched file:\n%s", got)
	}
	if strings.Contains(got, "el/core.po looks") {
		t.Errorf("status warns about a UTF-8 file:\n%s", got)
	}
}

func TestRunStatusResourceNotOnServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown resource", http.StatusNotFound)
	}))
	defer server.Close()

	a, out := newTestApp(t)
	root := newWorkspaceDir(t)
	a.flags.workspace = root
	writeProject(t, root, &config.Project{
		Host:    server.URL,
		Project: "website",
		Resources: []config.Resource{
			{Slug: "website.core", FileFilter: "translations/<lang>/core.po"},
		},
	})

	if err := a.runStatus(context.Background()); err != nil {
		t.Fatalf("runStatus() error = %v, want nil for a 404", err)
	}
	if !strings.Contains(out.String(), "not on "+server.URL+" yet") {
		t.Errorf("stdout = %q, want a not-on-server notice", out.String())
	}
}

func TestRunStatusInvalidConfig(t *testing.T) {
	a, _ := newTestApp(t)
	root := newWorkspaceDir(t)
	a.flags.workspace = root
	writeProject(t, root, &config.Project{
		Host:    "ftp://bad.example.com",
		Project: "website",
	})

	err := a.runStatus(context.Background())
	if err == nil || !strings.Contains(err.Error(), "must start with http") {
		t.Fatalf("runStatus() error = %v, want a host validation failure", err)
	}
}

func writeWorkspaceFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
