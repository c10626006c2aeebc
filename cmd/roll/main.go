package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	rollcmd "github.com/louisbranch/roll/internal/cmd/roll"
	"github.com/louisbranch/roll/internal/platform/config"
)

// main rolls a dice notation expression and prints the result.
func main() {
	cfg, err := rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rollcmd.Run(ctx, cfg); err != nil {
		config.Exitf("roll: %v", err)
	}
}
