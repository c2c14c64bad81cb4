package workspace

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// sniffLimit bounds how much of a file the detector reads.
const sniffLimit = 64 * 1024

const defaultEncoding = "utf-8"

// SniffEncoding guesses the character encoding of the file at path from
// its leading bytes. Content that decodes as UTF-8, including plain
// ASCII, reports utf-8 without consulting the detector, which has no
// ASCII class and would misfile such text as a legacy encoding. The
// guess is advisory: empty or undetectable content reports utf-8, and
// so does any detected name the decoder table cannot resolve. Names are
// lowercased.
func SniffEncoding(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, sniffLimit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	data := buf[:n]
	if len(data) == 0 {
		return defaultEncoding, nil
	}
	if validUTF8Prefix(data, n == sniffLimit) {
		return defaultEncoding, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return defaultEncoding, nil
	}
	name := strings.ToLower(result.Charset)
	if enc, _ := charset.Lookup(name); enc == nil {
		return defaultEncoding, nil
	}
	return name, nil
}

// validUTF8Prefix reports whether data is valid UTF-8. When truncated
// is set the read stopped at the sniff limit, so a multi-byte sequence
// may have been cut; up to three trailing bytes of an incomplete rune
// are ignored before checking.
func validUTF8Prefix(data []byte, truncated bool) bool {
	if truncated {
		for trim := 0; trim < utf8.UTFMax-1 && len(data) > 0; trim++ {
			r, size := utf8.DecodeLastRune(data)
			if r != utf8.RuneError || size != 1 {
				break
			}
			data = data[:len(data)-1]
		}
	}
	return utf8.Valid(data)
}
