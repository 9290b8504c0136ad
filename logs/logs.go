package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var Output *os.File

// InitializeFileLogger redirects the standard logger to the file at path.
func InitializeFileLogger(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatalf("couldn't create log directory: %s", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("couldn't create logs file: %s", err)
	}
	Output = f
	log.SetOutput(Output)
}

// Discard drops all log output.
func Discard() {
	log.SetOutput(io.Discard)
}

func CloseLogger() {
	if Output != nil {
		Output.Close()
	}
}
