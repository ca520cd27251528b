package utils

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Spinner initializes the progress indicator.
type Spinner struct {
	mu         *sync.RWMutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	StopMsg    string
	hideCursor bool
	running    bool
	stopChan   chan struct{}
	doneChan   chan struct{}
}

// NewSpinner instantiates a new progress indicator writing to w.
func NewSpinner(w io.Writer, msg string, d time.Duration, hideCursor bool) *Spinner {
	return &Spinner{
		mu:         &sync.RWMutex{},
		delay:      d,
		writer:     w,
		message:    msg,
		hideCursor: hideCursor,
	}
}

// Start starts the progress indicator. Starting a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})

	if s.hideCursor && runtime.GOOS != "windows" {
		// hides the cursor
		fmt.Fprint(s.writer, "\033[?25l")
	}

	go func(stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)
		for {
			for _, r := range `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏` {
				select {
				case <-stop:
					return
				default:
					s.mu.Lock()
					output := fmt.Sprintf("\r%s%s %c%s", s.message, SuccessColor, r, DefaultColor)
					fmt.Fprint(s.writer, output)
					s.lastOutput = output
					s.mu.Unlock()

					time.Sleep(s.delay)
				}
			}
		}
	}(s.stopChan, s.doneChan)
}

// Stop stops the progress indicator and prints StopMsg, if any.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	done := s.doneChan
	s.mu.Unlock()

	// Wait for the last frame to be written before clearing it.
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	s.RestoreCursor()
	if len(s.StopMsg) > 0 {
		fmt.Fprint(s.writer, s.StopMsg)
	}
}

// RestoreCursor restores back the cursor visibility.
func (s *Spinner) RestoreCursor() {
	if s.hideCursor && runtime.GOOS != "windows" {
		// makes the cursor visible
		fmt.Fprint(s.writer, "\033[?25h")
	}
}

// clear deletes the last line. Caller must hold the the locker.
func (s *Spinner) clear() {
	n := utf8.RuneCountInString(s.lastOutput)
	if runtime.GOOS == "windows" {
		clearString := "\r" + strings.Repeat(" ", n) + "\r"
		fmt.Fprint(s.writer, clearString)
		s.lastOutput = ""
		return
	}
	for _, c := range []string{"\b", "\127", "\b", "\033[K"} { // "\033[K" for macOS Terminal
		fmt.Fprint(s.writer, strings.Repeat(c, n))
	}
	fmt.Fprintf(s.writer, "\r\033[K") // clear line
	s.lastOutput = ""
}
