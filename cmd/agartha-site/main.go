package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"agartha/internal/server"
)

var banner = []string{
	"***************************************************",
	"**              Agartha Site                     **",
	"***************************************************",
}

// site is what a started server hands back.
type site interface {
	Wait(ctx context.Context) error
}

type starter func(args []string) (site, error)

// launch hands args to start untouched and prints the banner once it
// returns.
func launch(args []string, start starter, stdout io.Writer) (site, error) {
	s, err := start(args)
	if err != nil {
		return nil, err
	}
	for _, line := range banner {
		fmt.Fprintln(stdout, line)
	}
	return s, nil
}

func startSite(args []string) (site, error) {
	s, err := server.StartServer(args)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func main() {
	s, err := launch(os.Args[1:], startSite, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := s.Wait(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
