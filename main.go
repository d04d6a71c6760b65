package main

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/drengskapur/filemerge/cmd"
)

func main() {
	err := cmd.Execute()
	logger := cmd.Logger()
	if err != nil {
		logger.Debug("filemerge execution failed", zap.Error(err))
		cmd.PrintError(os.Stderr, err)
	}
	syncLogger(logger)
	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the logger. Syncing stderr fails with EINVAL on some
// platforms when it is a pipe, so it is only attempted for terminals and files.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
