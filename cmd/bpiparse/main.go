package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gbacareza/bpi-statement-parser/internal/commands"
	"github.com/gbacareza/bpi-statement-parser/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	if err := commands.NewRootCommand(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}
