package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
)

const (
	executableName = "nsresolver"
)

func main() {
	log.SetPrefix(executableName + ": ")
	log.SetFlags(0) // don't print timestamps

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailed) {
			log.Println("ERROR:", err)
		}
		cancel()
		os.Exit(1)
	}
}
