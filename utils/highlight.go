package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderJSON indents data and writes it to w, highlighted with the given
// chroma theme when highlight is set.
func RenderJSON(w io.Writer, data []byte, theme string, highlight bool) error {
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return err
	}
	indented.WriteByte('\n')

	if !highlight {
		_, err := w.Write(indented.Bytes())
		return err
	}

	return quick.Highlight(w, indented.String(), "json", "terminal256", theme)
}
