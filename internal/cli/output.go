package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Output formats.
const (
	formatHTML = "html"
	formatJSON = "json"
	formatYAML = "yaml"
)

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutput calls write with the command's stdout, or with path when set.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeString writes s followed by a newline.
func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

// countLabel returns "1 noun" or "1,234 nouns".
func countLabel(n int, noun string) string {
	p := message.NewPrinter(language.English)
	if n == 1 {
		return p.Sprintf("%d %s", n, noun)
	}
	return p.Sprintf("%d %ss", n, noun)
}
