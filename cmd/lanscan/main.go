package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanscan/internal/runner"
)

func main() {
	options := runner.ParseOptions()
	lanscanRunner, err := runner.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// outstanding probes fail fast once ctx is done; the partial report is
	// still printed and exported
	go func() {
		<-c
		fmt.Println("\r- Ctrl+C pressed in Terminal, stopping scan...")
		cancel()
	}()

	err = lanscanRunner.Run(ctx)
	if err != nil {
		gologger.Fatal().Msgf("Could not run lanscan: %s\n", err)
	}
}
