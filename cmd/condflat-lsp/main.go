package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mamaar/condflat/internal/config"
	"github.com/mamaar/condflat/internal/logging"
	"github.com/mamaar/condflat/internal/lsp"
)

func main() {
	var (
		portFlag    = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("condflat-lsp v0.1.0")
		os.Exit(0)
	}

	cfg, err := config.Discover(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "condflat-lsp: %v\n", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if *debugFlag {
		level = "debug"
	}
	logger := logging.New(level)

	server := lsp.NewServer(cfg.Indent.Unit(), logger)
	if err := server.Start(context.Background(), *portFlag); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
