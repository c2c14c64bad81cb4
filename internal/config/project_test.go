package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lingocli/lingo/internal/config"
	"github.com/lingocli/lingo/internal/workspace"
)

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, workspace.MarkerDir), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(config.ProjectPath(root), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return root
}

func TestLoadProject(t *testing.T) {
	root := writeProjectFile(t, `
host: https://app.lingocli.com
project: website
resources:
  - slug: website.core
    file_filter: locale/<lang>/core.po
    source_file: locale/en/core.po
    source_lang: en
    type: PO
`)

	p, err := config.LoadProject(root)
	if err != nil {
		t.Fatalf("LoadProject() error = %v, want nil", err)
	}

	if p.Host != "https://app.lingocli.com" {
		t.Errorf("Host = %q, want https://app.lingocli.com", p.Host)
	}
	if p.Project != "website" {
		t.Errorf("Project = %q, want website", p.Project)
	}
	want := []config.Resource{{
		Slug:       "website.core",
		FileFilter: "locale/<lang>/core.po",
		SourceFile: "locale/en/core.po",
		SourceLang: "en",
		Type:       "PO",
	}}
	if !reflect.DeepEqual(p.Resources, want) {
		t.Errorf("Resources = %+v, want %+v", p.Resources, want)
	}
}

func TestLoadProjectRejectsUnknownKeys(t *testing.T) {
	root := writeProjectFile(t, `
host: https://app.lingocli.com
projct: website
`)

	_, err := config.LoadProject(root)
	if err == nil {
		t.Fatal("LoadProject() error = nil, want unknown key error")
	}
	if !strings.Contains(err.Error(), "projct") {
		t.Errorf("LoadProject() error = %q, want the bad key named", err.Error())
	}
}

func TestLoadProjectEmptyFile(t *testing.T) {
	root := writeProjectFile(t, "")

	p, err := config.LoadProject(root)
	if err != nil {
		t.Fatalf("LoadProject() error = %v, want nil for empty file", err)
	}
	if p.Host != "" || len(p.Resources) != 0 {
		t.Errorf("LoadProject() = %+v, want zero Project", p)
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	_, err := config.LoadProject(t.TempDir())
	if err == nil {
		t.Error("LoadProject() error = nil, want read error")
	}
}

func TestSaveProjectRoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := workspace.EnsureDir(filepath.Join(root, workspace.MarkerDir)); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	p := &config.Project{
		Host:    "https://app.lingocli.com",
		Project: "website",
		Resources: []config.Resource{
			{Slug: "website.core", FileFilter: "locale/<lang>/core.po"},
		},
	}
	if err := config.SaveProject(root, p); err != nil {
		t.Fatalf("SaveProject() error = %v, want nil", err)
	}

	loaded, err := config.LoadProject(root)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, p) {
		t.Errorf("reloaded project = %+v, want %+v", loaded, p)
	}
}
