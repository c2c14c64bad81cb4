// Package filter compiles file filter expressions into anchored path patterns.
//
// A file filter expression is a path-like string in which the literal token
// <lang> stands for a language code, e.g. "translations/<lang>/app.po".
// Compiling joins the expression with a root path, escapes everything else
// literally, and turns each placeholder into a capturing group so matching
// local files can be mapped back to their language.
package filter

import (
	"path/filepath"
	"regexp"
	"strings"
)

// LangPlaceholder is the literal token that stands for a language code
// inside a file filter expression. Any other content is literal path text.
const LangPlaceholder = "<lang>"

// langGroup matches one or more characters excluding the path separator,
// so a language code can never span directories.
const langGroup = `([^/]+)`

// Pattern is a compiled file filter expression: a fully anchored regular
// expression with one capturing group per <lang> token in the source.
type Pattern struct {
	re *regexp.Regexp
}

// Compile turns a file filter expression into an anchored path pattern.
// The expression is converted to its native-path form, joined with rootPath,
// normalized back to forward slashes, and escaped so every character except
// the <lang> placeholder matches literally. Each placeholder becomes a
// capturing group. Any input is accepted; an expression without <lang>
// compiles to a literal-only pattern that matches exactly one path.
func Compile(fileFilter, rootPath string) Pattern {
	joined := filepath.ToSlash(filepath.Join(rootPath, filepath.FromSlash(fileFilter)))
	// QuoteMeta leaves angle brackets unescaped, so the placeholder token
	// survives escaping and can be substituted afterwards.
	escaped := regexp.QuoteMeta(joined)
	source := "^" + strings.ReplaceAll(escaped, LangPlaceholder, langGroup) + "$"
	return Pattern{re: regexp.MustCompile(source)}
}

// Match reports whether path (forward-slash form) matches the pattern.
func (p Pattern) Match(path string) bool {
	return p.re.MatchString(path)
}

// Lang extracts the language code from a matching path. The second return
// is false when the path does not match or the pattern has no language
// group. With multiple placeholders the first group wins.
func (p Pattern) Lang(path string) (string, bool) {
	m := p.re.FindStringSubmatch(path)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Groups returns the number of capturing groups in the pattern: one per
// <lang> token in the source expression.
func (p Pattern) Groups() int {
	return p.re.NumSubexp()
}

// String returns the regular expression source of the compiled pattern.
func (p Pattern) String() string {
	return p.re.String()
}
