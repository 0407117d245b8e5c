package main

import (
	"os"

	"github.com/smith3v/reply-reminder/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error("reply-reminder stopped", "error", err)
		os.Exit(1)
	}
}
