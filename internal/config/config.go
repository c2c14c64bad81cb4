package config

import (
	"fmt"
	"strings"

	"github.com/lingocli/lingo/internal/filter"
	"github.com/lingocli/lingo/internal/urls"
)

// DefaultHost is the service a fresh workspace points at.
const DefaultHost = "https://app.lingocli.com"

// Resource maps one remote resource to local files. FileFilter is a
// path expression relative to the workspace root; its <lang> token
// stands for the language code (see the filter package).
type Resource struct {
	Slug       string `yaml:"slug"`
	FileFilter string `yaml:"file_filter"`
	SourceFile string `yaml:"source_file,omitempty"`
	SourceLang string `yaml:"source_lang,omitempty"`
	Type       string `yaml:"type,omitempty"`
}

// Project is the per-workspace mapping file, stored at
// .lingo/config.yaml under the workspace root.
type Project struct {
	Host      string     `yaml:"host"`
	Project   string     `yaml:"project"`
	Resources []Resource `yaml:"resources,omitempty"`
}

// NewProject returns a skeleton mapping for a fresh workspace.
func NewProject(host string) *Project {
	if strings.TrimSpace(host) == "" {
		host = DefaultHost
	}
	return &Project{Host: host}
}

// Resource returns the mapping for slug, or nil.
func (p *Project) Resource(slug string) *Resource {
	for i := range p.Resources {
		if p.Resources[i].Slug == slug {
			return &p.Resources[i]
		}
	}
	return nil
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (p Project) Validate() error {
	var issues []string

	issues = append(issues, validateHost(p.Host)...)
	if strings.TrimSpace(p.Project) == "" {
		issues = append(issues, "project is required")
	}
	issues = append(issues, validateResources(p.Resources)...)

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

// ValidateHost checks a host value on its own, before a full Project
// exists to validate.
func ValidateHost(host string) error {
	if issues := validateHost(host); len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

func validateHost(host string) []string {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return []string{"host is required"}
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return []string{fmt.Sprintf("host %q must start with http:// or https://", trimmed)}
	}
	return nil
}

func validateResources(resources []Resource) []string {
	var issues []string
	seenSlugs := map[string]int{}
	for idx, res := range resources {
		slug := strings.TrimSpace(res.Slug)
		switch {
		case slug == "":
			issues = append(issues, fmt.Sprintf("resources[%d]: slug is required", idx))
		case !urls.ValidSlug(slug):
			issues = append(issues, fmt.Sprintf("resources[%d]: slug %q must be in project.resource form", idx, slug))
		default:
			if prev, ok := seenSlugs[slug]; ok {
				issues = append(issues, fmt.Sprintf("resources[%d]: duplicate slug also defined at index %d", idx, prev))
			} else {
				seenSlugs[slug] = idx
			}
		}

		ff := strings.TrimSpace(res.FileFilter)
		if ff == "" {
			issues = append(issues, fmt.Sprintf("resources[%d]: file_filter is required", idx))
		} else if strings.Count(ff, filter.LangPlaceholder) > 1 {
			issues = append(issues, fmt.Sprintf("resources[%d]: file_filter may contain at most one %s", idx, filter.LangPlaceholder))
		}
	}
	return issues
}
