package api

import (
	"mime"
	"net/http"
	"strings"
)

// defaultCharset is reported when the server declares none.
const defaultCharset = "utf-8"

// DetermineCharset extracts the declared character set from a response's
// Content-Type header, lowercased. A missing header, a missing charset
// parameter, or an unparseable value all report "utf-8".
//
// The declared charset is reported, not applied: response bodies are always
// produced as UTF-8 text (see Outcome). Callers must not assume
// charset-correct decoding for non-UTF-8 servers.
func DetermineCharset(resp *http.Response) string {
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return defaultCharset
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return defaultCharset
	}
	if charset, ok := params["charset"]; ok && charset != "" {
		return strings.ToLower(charset)
	}
	return defaultCharset
}
