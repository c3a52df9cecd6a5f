package log

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// WithSpinner executes the given function while showing a spinner with the specified message.
// The spinner is written to w; the final message reports whether fn failed.
func WithSpinner(w io.Writer, message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message

	err := s.Color("green")
	if err != nil {
		return fmt.Errorf("coloring green: %w", err)
	}

	s.Start()

	err = fn()
	if err != nil {
		s.FinalMSG = message + " \033[31m[failed]\033[0m\n"
	} else {
		s.FinalMSG = message + " \033[32m[done]\033[0m\n"
	}
	s.Stop()

	return err
}
