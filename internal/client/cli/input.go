package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads one trimmed line from reader.
// A partial last line before EOF is returned as is.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// getRawLine is GetSimpleText without trimming: only the line ending is
// dropped, so leading and trailing spaces survive as typed.
func getRawLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetPassword reads a password without echo when fd is a terminal. Piped
// input falls back to reading a plain line from reader.
func GetPassword(reader *bufio.Reader, fd int, w io.Writer) (string, error) {
	if !isTerminal(fd) {
		return getRawLine(reader, "Enter password", w)
	}

	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetValidated keeps asking until valid accepts the input, printing hint
// after every rejected attempt.
func GetValidated(reader *bufio.Reader, prompt string, w io.Writer, valid func(string) bool, hint string) (string, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return "", err
		}
		if valid(s) {
			return s, nil
		}
		fmt.Fprintln(w, hint)
	}
}

// GetChoice lists options numbered from 1 and returns the picked one.
// Empty or out of range input re-prompts.
func GetChoice(reader *bufio.Reader, prompt string, options []string, w io.Writer) (string, error) {
	var b strings.Builder
	b.WriteString(prompt)
	for i, o := range options {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, o)
	}

	for {
		s, err := GetSimpleText(reader, b.String(), w)
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintf(w, "Please select an answer (1-%d)\n", len(options))
	}
}
