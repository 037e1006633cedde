package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/cavegen/internal/config"
	"github.com/OCharnyshevich/cavegen/internal/preset"
)

func main() {
	var (
		src = flag.String("src", "./presets", "preset source: local path, URL or git::<repo>//<dir>")
		out = flag.String("o", "./data/presets", "output dir path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *out == "" {
		log.Error("output dir path required")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	files, err := preset.Fetch(ctx, *src, *out, log)
	if err != nil {
		log.Error("fetch presets", "error", err)
		cancel()
		os.Exit(1)
	}

	invalid := 0
	for _, f := range files {
		cfg := config.DefaultConfig()
		if err := preset.Load(f, cfg); err != nil {
			invalid++
			log.Warn("skip preset", "path", f, "error", err)
			continue
		}
		if err := cfg.Params().Validate(); err != nil {
			invalid++
			log.Warn("skip preset", "path", f, "error", err)
			continue
		}
		fmt.Printf("%-16s %dx%d fill=%d room-size=%d passage=%d\n",
			preset.Name(f), cfg.Width, cfg.Height, cfg.FillPercent, cfg.RoomSizeThreshold, cfg.PassageRadius)
	}
	if invalid > 0 {
		cancel()
		os.Exit(1)
	}
}
