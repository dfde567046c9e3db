package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdinReader *bufio.Reader

func reader() *bufio.Reader {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(streams.In)
	}
	return stdinReader
}

// prompt asks for a line of input
func prompt(label string) (string, error) {
	fmt.Fprint(streams.Err, label)
	line, err := reader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret asks for input without echo when attached to a terminal
func promptSecret(label string) (string, error) {
	if f, ok := streams.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(streams.Err, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(streams.Err)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	return prompt(label)
}

// confirm asks a yes/no question, defaulting to no
func confirm(question string) (bool, error) {
	answer, err := prompt(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
