// Package util holds small file helpers shared by training and
// analysis code.
package util

import (
	"os"
	"strings"
)

// WriteToFile writes the given chunks to a file, one per line,
// replacing any existing content.
func WriteToFile(savePath string, content ...string) error {
	return os.WriteFile(savePath, []byte(strings.Join(content, "\n")+"\n"), 0644)
}

// AppendToFile appends the given chunks to a file, one per line,
// creating the file if needed. Trace recording appends one JSON
// document per line.
func AppendToFile(savePath string, content ...string) error {
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, s := range content {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return nil
}
