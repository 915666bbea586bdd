package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
)

const ansiReset = "\x1b[0m"

var statusStyles = map[statusKind]struct {
	label string
	color string
}{
	statusInfo: {"INFO", "\x1b[34m"},
	statusOK:   {"OK", "\x1b[32m"},
	statusWarn: {"WARN", "\x1b[33m"},
}

// renderStatusLine formats one "  Label:  [KIND] message" row, colorized by
// kind when writing to a terminal.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	text := "[" + style.label + "]"
	if message != "" {
		text += " " + message
	}
	line := fmt.Sprintf("  %-18s %s", label+":", text)
	if colorize && style.color != "" {
		line = style.color + line + ansiReset
	}
	return line
}

func renderSectionHeader(title string, colorize bool) []string {
	header := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len(header))
	if colorize {
		blue := statusStyles[statusInfo].color
		return []string{blue + header + ansiReset, blue + rule + ansiReset}
	}
	return []string{header, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
