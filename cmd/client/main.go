package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coastalbeacon/beacon/internal/client"
	"github.com/coastalbeacon/beacon/internal/client/cli"
	"github.com/joho/godotenv"
)

const defaultAPIBase = "http://localhost:5000"

func main() {
	_ = godotenv.Load()

	apiBase := os.Getenv("BEACON_API_BASE")
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	fs := flag.NewFlagSet("beacon", flag.ExitOnError)
	api := fs.String("api", apiBase, "base URL of the accounts API")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: beacon [-api URL] signup|login\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(client.New(*api, nil), os.Stdin, os.Stdout)

	var err error
	switch fs.Arg(0) {
	case "signup":
		err = app.SignUp(ctx)
	case "login":
		err = app.Login(ctx)
	default:
		fs.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
