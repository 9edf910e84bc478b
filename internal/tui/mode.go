package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how command output should be rendered.
type OutputMode int

const (
	// ModeTUI uses bubbletea for the interactive browser.
	ModeTUI OutputMode = iota
	// ModePlain writes static tables.
	ModePlain
	// ModeJSON writes structured JSON output.
	ModeJSON
)

// DetectMode picks the output mode for out. JSON wins over everything, and
// the browser needs a real terminal.
func DetectMode(out io.Writer, plain, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if plain || !isTerminal(out) {
		return ModePlain
	}
	return ModeTUI
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return false
		}
	}
	return true
}
