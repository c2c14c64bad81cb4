package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner is a stderr progress indicator shown around network calls. It
// redraws in place and clears its line when stopped, so command output
// stays clean.
type spinner struct {
	message string
	out     io.Writer
	colored bool
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// spin starts a spinner with the given message on the app's stderr.
func (a *app) spin(message string) *spinner {
	s := &spinner{
		message: message,
		out:     a.stderr,
		colored: a.ui.colored,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	s.start()
	return s
}

func (s *spinner) start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				if s.colored {
					frame = styleSpinner.Render(frame)
				}
				fmt.Fprintf(s.out, "\r%s %s", frame, s.message)
			}
		}
	}()
}

// stop halts the animation and clears the line. Safe to call more than
// once.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.done)
		<-s.stopped
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", utf8.RuneCountInString(s.message)+2))
	})
}
