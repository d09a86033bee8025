package cli

import (
	"fmt"
	"io"
	"os"
)

// readInput reads diagram text from the named file, or from stdin when the
// name is empty or "-".
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// writeOutput writes data to the named file, or to stdout when the name is
// empty.
func writeOutput(path, data string) error {
	if path == "" {
		_, err := fmt.Print(data)
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
