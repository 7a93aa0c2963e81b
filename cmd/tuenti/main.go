package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/app"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
)

const usage = `usage: tuenti [command]

commands:
  serve                      run the HTTP service (default)
  mint-invite [-ttl 168h]    print a new invitation code
`

func main() {
	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	switch cmd {
	case "serve":
		serve(cfg)
	case "mint-invite":
		mintInvite(cfg, args)
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func serve(cfg app.Config) {
	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

// mintInvite creates an invitation owned by nobody, to seed the first
// accounts of a fresh install.
func mintInvite(cfg app.Config, args []string) {
	fs := flag.NewFlagSet("mint-invite", flag.ExitOnError)
	ttl := fs.Duration("ttl", service.DefaultInvitationTTL, "invitation lifetime")
	_ = fs.Parse(args)

	// stdout carries only the code.
	cfg.LogOutput = os.Stderr

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer func() { _ = application.Close(ctx) }()

	code, inv, err := application.InvitationService().Mint(ctx, "", *ttl)
	if err != nil {
		log.Fatalf("failed to mint invitation: %v", err)
	}

	fmt.Fprintf(os.Stdout, "%s\n", code)
	fmt.Fprintf(os.Stderr, "invitation %s expires %s\n", inv.ID, inv.ExpiresAt.Format(time.RFC3339))
}
