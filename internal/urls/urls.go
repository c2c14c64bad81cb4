// Package urls recognizes project and resource addresses and resolves API
// endpoint paths.
//
// Two address forms are accepted, and they are mutually exclusive by
// structure (the resource form carries an extra path segment):
//
//	http(s)://<host>/projects/p/<project>/
//	http(s)://<host>/projects/p/<project>/resource/<resource>/
package urls

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tags which address form a URL matched.
type Kind int

const (
	KindResource Kind = iota
	KindProject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindProject:
		return "project"
	}
	return "unknown"
}

// Parsed holds the fields extracted from a recognized URL. Hostname keeps
// its scheme prefix; Resource is empty for project addresses.
type Parsed struct {
	Kind     Kind
	Hostname string
	Project  string
	Resource string
}

// URL renders the canonical address for the parsed fields.
func (p Parsed) URL() string {
	if p.Kind == KindResource {
		return fmt.Sprintf("%s/projects/p/%s/resource/%s/", p.Hostname, p.Project, p.Resource)
	}
	return fmt.Sprintf("%s/projects/p/%s/", p.Hostname, p.Project)
}

var (
	resourceURL = regexp.MustCompile(`^(?P<hostname>https?://[\w.:-]+)/projects/p/(?P<project>[\w-]+)/resource/(?P<resource>[\w-]+)/?$`)
	projectURL  = regexp.MustCompile(`^(?P<hostname>https?://[\w.:-]+)/projects/p/(?P<project>[\w-]+)/?$`)
)

// MalformedURLError reports a URL that matches neither address form.
type MalformedURLError struct {
	URL string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("malformed URL %q: expected http(s)://<host>/projects/p/<project>/ or .../resource/<resource>/ (run 'lingo help remote')", e.URL)
}

// Parse decomposes raw into its address fields. The resource form is tried
// first, then the project form; structure keeps them mutually exclusive, so
// the order carries no semantics. URLs matching neither form return a
// *MalformedURLError.
func Parse(raw string) (Parsed, error) {
	if fields, ok := match(resourceURL, raw); ok {
		return Parsed{
			Kind:     KindResource,
			Hostname: fields["hostname"],
			Project:  fields["project"],
			Resource: fields["resource"],
		}, nil
	}
	if fields, ok := match(projectURL, raw); ok {
		return Parsed{
			Kind:     KindProject,
			Hostname: fields["hostname"],
			Project:  fields["project"],
		}, nil
	}
	return Parsed{}, &MalformedURLError{URL: raw}
}

func match(re *regexp.Regexp, raw string) (map[string]string, bool) {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}
	fields := make(map[string]string, 3)
	for i, name := range re.SubexpNames() {
		if name != "" {
			fields[name] = m[i]
		}
	}
	return fields, true
}

var slugPart = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// ValidSlug reports whether slug has the <part>.<part> form used for
// resource identifiers: exactly one separating dot, each part limited to
// letters, digits, underscore and hyphen.
func ValidSlug(slug string) bool {
	parts := strings.Split(slug, ".")
	if len(parts) != 2 {
		return false
	}
	for _, part := range parts {
		if !slugPart.MatchString(part) {
			return false
		}
	}
	return true
}
