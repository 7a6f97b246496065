// Package util holds small helpers shared by the commands and the interfaces.
package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crosswatch-cli/crosswatch/filesystem"
	"golang.org/x/term"
)

// Quantify returns count followed by the singular or plural label.
func Quantify(count int, singular, plural string) string {
	label := plural
	if count == 1 {
		label = singular
	}

	return fmt.Sprintf("%d %s", count, label)
}

func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// TerminalSize reports the size of stdout. It falls back to 80x24 when stdout is not a terminal.
func TerminalSize() (width, height int, err error) {
	width, height, err = term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24, err
	}

	return width, height, nil
}

// PrintErasable prints msg to stdout and returns a function that clears it again.
func PrintErasable(msg string) (eraser func()) {
	_, _ = fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		_, _ = fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", utf8.RuneCountInString(msg)))
	}
}

// Ignore calls f and discards its error. Meant for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

// Delete removes a file or a whole directory. A missing path is not an error.
func Delete(path string) error {
	err := filesystem.API().RemoveAll(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
