package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/IlyasAtabaev731/retail-ledger/internal/cli"
	"github.com/IlyasAtabaev731/retail-ledger/internal/config"
	"github.com/IlyasAtabaev731/retail-ledger/internal/events"
	"github.com/IlyasAtabaev731/retail-ledger/internal/ledger"
	"github.com/IlyasAtabaev731/retail-ledger/internal/lib/password"
)

func main() {
	var configPath string
	var trace bool

	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to config file")
	flag.BoolVar(&trace, "trace", false, "print every ledger event on exit")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	// the menu owns stdout, diagnostics go to stderr
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	publisher, recorder := newPublisher(trace)
	bank := ledger.New(log, cfg.Ledger, password.NewBcrypt(cfg.Ledger.BcryptCost), publisher)

	if err := cli.New(bank, os.Stdin, os.Stdout).Run(context.Background()); err != nil {
		log.Error("Menu stopped", "error", err)
		os.Exit(1)
	}

	if recorder != nil {
		for _, e := range recorder.Events() {
			fmt.Fprintf(os.Stderr, "%s %-16s %s #%d -> %s #%d %s\n",
				e.OccurredAt.Format("15:04:05.000"), e.Kind, e.Customer, e.AccountID,
				e.Counterparty, e.CounterAccountID, e.Amount.StringFixed(2))
		}
	}
}

// newPublisher records events only when they will be printed.
func newPublisher(trace bool) (ledger.EventPublisher, *events.Recorder) {
	if !trace {
		return events.Nop{}, nil
	}
	recorder := events.NewRecorder()
	return recorder, recorder
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.LoadPath(path)
}
