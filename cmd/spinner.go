package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// spinner animates a one-line progress message while a slow call runs.
type spinner struct {
	out      io.Writer
	message  string
	quit     chan struct{}
	finished chan struct{}
	once     sync.Once
}

// startSpinner begins animating message on out. Call stop exactly when the
// work is done; extra calls are no-ops.
func startSpinner(out io.Writer, message string) (s *spinner) {
	s = &spinner{
		out:      out,
		message:  message,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}

	go s.run()

	return s
}

func (s *spinner) run() {
	defer close(s.finished)

	frames := `|/-\`
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	fmt.Fprintf(s.out, "%s ", s.message)
	for i := 0; ; i++ {
		select {
		case <-s.quit:
			// Blank the line so following output starts clean
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
			return
		case <-ticker.C:
			fmt.Fprintf(s.out, "\r%s %c", s.message, frames[i%len(frames)])
		}
	}
}

func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.finished
	})
}
