package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// labelList renders labels prefixed with marker, or "-" when there are none.
func labelList(labels []string, marker string) string {
	if len(labels) == 0 {
		return "-"
	}
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = marker + label
	}
	return strings.Join(parts, " ")
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
