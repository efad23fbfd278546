package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// stdinIsTerminal reports whether interactive prompting is possible.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptLine asks the operator for one line of input. It fails when stdin is
// not a terminal, so scripted invocations get a hard error instead of a
// hanging read.
func promptLine(cmd *cobra.Command, label string) (string, error) {
	if !stdinIsTerminal() {
		return "", fmt.Errorf("%s is required (stdin is not a terminal, pass it as a flag or argument)", label)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	return value, nil
}
