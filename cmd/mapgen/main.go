package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gbusto/overseer/internal/config"
	"github.com/gbusto/overseer/internal/terrain"
)

func main() {
	var (
		cfgPath string
		outPath string
		seed    int64
	)
	flag.StringVar(&cfgPath, "config", "", "path to map generator configuration file")
	flag.StringVar(&outPath, "out", "overseer_map.json", "path of the map artifact to write")
	flag.Int64Var(&seed, "seed", 0, "override the configured seed (0 keeps the config value)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			log.Fatalf("configuration rejected: %v", err)
		}
		log.Fatalf("load config: %v", err)
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	gen, err := terrain.NewGenerator(cfg)
	if err != nil {
		log.Fatalf("initialise generator: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	artifact, err := gen.Generate(ctx)
	if err != nil {
		log.Fatalf("generate map: %v", err)
	}
	if err := artifact.WriteFile(outPath); err != nil {
		log.Fatalf("write map artifact: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}

		// Ensure the process terminates if an aborted run stalls.
		time.AfterFunc(10*time.Second, func() {
			log.Printf("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
