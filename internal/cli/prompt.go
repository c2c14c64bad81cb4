package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question and loops until it gets an answer it
// understands. An empty answer picks def, shown uppercased in the prompt.
// When in runs dry the default wins, so non-interactive use cannot hang.
func confirm(in io.Reader, out io.Writer, prompt string, def bool) bool {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "%s %s ", prompt, suffix)
		line, err := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		case "":
			return def
		}
		if err != nil {
			return def
		}
	}
}
