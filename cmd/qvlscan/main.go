package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/qvl-tools/qvlscan/internal/cli"
)

func main() {
	// Interrupt tears the process down; the browser contexts are scoped to
	// the run and die with it.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Interrupt received, shutting down")
		os.Exit(1)
	}()

	cli.Execute()
}
