// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
)

func main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := Main(ctx, os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		log.Printf("%v: %v", os.Args[0], err)
		usage.ShowUsage(os.Stderr)
		stop()
		os.Exit(2)
	}

	stop()
	log.Fatalf("%v: %v", os.Args[0], err)
}
