package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/OCharnyshevich/cavegen/internal/config"
	"github.com/OCharnyshevich/cavegen/internal/placement"
	"github.com/OCharnyshevich/cavegen/internal/preset"
	"github.com/OCharnyshevich/cavegen/internal/render"
	"github.com/OCharnyshevich/cavegen/internal/storage"
	"github.com/OCharnyshevich/cavegen/internal/storage/sqlite"
	"github.com/OCharnyshevich/cavegen/internal/telemetry"
	"github.com/OCharnyshevich/cavegen/pkg/dungeon"
)

type options struct {
	preset     string
	preview    bool
	batch      int
	workers    int
	list       int
	show       string
	saveConfig bool
	quiet      bool
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := config.DefaultConfig()
	if err := config.ParseEnv(cfg); err != nil {
		log.Error("load environment", "error", err)
		os.Exit(1)
	}

	var opts options
	flag.IntVar(&cfg.Width, "width", cfg.Width, "interior width in tiles")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "interior height in tiles")
	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, "generation seed")
	flag.BoolVar(&cfg.UseRandomSeed, "random-seed", cfg.UseRandomSeed, "derive the seed from the current time")
	flag.IntVar(&cfg.FillPercent, "fill", cfg.FillPercent, "initial wall percentage, 0..100")
	flag.Float64Var(&cfg.NoiseScale, "noise-scale", cfg.NoiseScale, "coherent noise feature size in tiles, 0 for per-tile fill")
	flag.IntVar(&cfg.SmoothingIterations, "smooth", cfg.SmoothingIterations, "global smoothing iterations")
	flag.IntVar(&cfg.SmoothingThreshold, "smooth-threshold", cfg.SmoothingThreshold, "global smoothing neighbour threshold")
	flag.IntVar(&cfg.RoomSmoothingIterations, "room-smooth", cfg.RoomSmoothingIterations, "room smoothing iterations")
	flag.IntVar(&cfg.RoomSmoothingThreshold, "room-smooth-threshold", cfg.RoomSmoothingThreshold, "room smoothing neighbour threshold")
	flag.IntVar(&cfg.WallSizeThreshold, "wall-size", cfg.WallSizeThreshold, "wall regions below this size become floor")
	flag.IntVar(&cfg.RoomSizeThreshold, "room-size", cfg.RoomSizeThreshold, "floor regions below this size become wall")
	flag.IntVar(&cfg.PassageRadius, "passage", cfg.PassageRadius, "passage brush radius")
	flag.IntVar(&cfg.BorderSize, "border", cfg.BorderSize, "wall border thickness")
	flag.BoolVar(&cfg.Diagonal, "diagonal", cfg.Diagonal, "carve straight diagonal passages")
	flag.IntVar(&cfg.ChestRoomPercent, "chest-percent", cfg.ChestRoomPercent, "chance for a room to hold a shield")
	flag.IntVar(&cfg.EnemiesPerRoom, "enemies", cfg.EnemiesPerRoom, "enemies per enemy room")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for config and layouts")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "layout catalog path (default <data-dir>/layouts.db)")
	flag.StringVar(&opts.preset, "preset", "", "preset file applied over the saved config")
	flag.BoolVar(&opts.preview, "preview", false, "open an interactive terminal preview")
	flag.IntVar(&opts.batch, "batch", 0, "generate this many layouts from derived seeds")
	flag.IntVar(&opts.workers, "workers", runtime.NumCPU(), "batch worker count")
	flag.IntVar(&opts.list, "list", 0, "list the most recent catalog entries and exit")
	flag.StringVar(&opts.show, "show", "", "print a stored layout by id and exit")
	flag.BoolVar(&opts.saveConfig, "save-config", false, "write the effective config to <data-dir>/config.json")
	flag.BoolVar(&opts.quiet, "quiet", false, "do not print the layout")
	flag.Parse()

	explicitFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicitFlags[f.Name] = true })

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, log, cfg, opts, explicitFlags); err != nil {
		log.Error("cavegen failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg *config.Config, opts options, explicitFlags map[string]bool) error {
	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		return err
	}

	// Precedence, lowest first: defaults, config file, preset, env, flags.
	fromFile := config.DefaultConfig()
	if err := store.LoadConfig(fromFile); err != nil {
		return err
	}
	if opts.preset != "" {
		if err := preset.Load(opts.preset, fromFile); err != nil {
			return err
		}
		log.Info("applied preset", "name", preset.Name(opts.preset))
	}
	if err := config.ParseEnv(fromFile); err != nil {
		return err
	}
	config.Merge(cfg, fromFile, explicitFlags)

	if opts.saveConfig {
		if err := store.SaveConfig(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		log.Info("saved config", "dir", cfg.DataDir)
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry())
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(cfg.DataDir, "layouts.db")
	}
	catalog, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer catalog.Close()

	switch {
	case opts.list > 0:
		return listLayouts(ctx, catalog, opts.list)
	case opts.show != "":
		return showLayout(ctx, catalog, opts.show)
	case opts.batch > 0:
		return generateBatch(ctx, log, cfg, opts, store, catalog)
	}

	layout, err := dungeon.GenerateContext(ctx, cfg.Params())
	if err != nil {
		return err
	}
	spawns := placement.Assign(layout, placementOptions(cfg))
	log.Info("generated layout",
		"seed", layout.Seed,
		"rooms", len(layout.Rooms),
		"passages", len(layout.Passages),
		"spawns", len(spawns),
	)

	if err := save(ctx, log, store, catalog, layout, spawns); err != nil {
		return err
	}

	if opts.preview {
		return preview(ctx, cfg, layout, spawns)
	}
	if !opts.quiet {
		fmt.Print(render.Text(layout, spawns))
	}
	return nil
}

func placementOptions(cfg *config.Config) placement.Options {
	opts := placement.DefaultOptions()
	opts.ChestRoomPercent = cfg.ChestRoomPercent
	opts.EnemiesPerRoom = cfg.EnemiesPerRoom
	return opts
}

func save(ctx context.Context, log *slog.Logger, store *storage.Storage, catalog *sqlite.Store, layout *dungeon.Layout, spawns []placement.Spawn) error {
	ld := storage.LayoutDataFromLayout(layout, spawns)
	if err := store.SaveLayout(ld); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	if err := catalog.SaveLayout(ctx, ld); err != nil {
		return fmt.Errorf("catalog layout: %w", err)
	}
	log.Info("saved layout", "id", ld.ID, "seed", ld.Seed)
	return nil
}

func generateBatch(ctx context.Context, log *slog.Logger, cfg *config.Config, opts options, store *storage.Storage, catalog *sqlite.Store) error {
	seeds := make([]string, opts.batch)
	for i := range seeds {
		seeds[i] = fmt.Sprintf("%s-%d", cfg.Seed, i)
	}

	// Layouts finished before an interrupt are still saved.
	saveCtx := context.WithoutCancel(ctx)
	failed, skipped := 0, 0
	for _, res := range dungeon.GenerateBatch(ctx, cfg.Params(), seeds, opts.workers) {
		if ctx.Err() != nil && errors.Is(res.Err, ctx.Err()) {
			skipped++
			continue
		}
		if res.Err != nil {
			failed++
			log.Warn("generation failed", "seed", res.Seed, "error", res.Err)
			continue
		}
		spawns := placement.Assign(res.Layout, placementOptions(cfg))
		if err := save(saveCtx, log, store, catalog, res.Layout, spawns); err != nil {
			return err
		}
	}
	log.Info("batch done", "total", len(seeds), "failed", failed, "skipped", skipped)
	if skipped > 0 {
		return fmt.Errorf("batch interrupted: %w", ctx.Err())
	}
	return nil
}

func listLayouts(ctx context.Context, catalog *sqlite.Store, limit int) error {
	summaries, err := catalog.ListLayouts(ctx, limit)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("%s  %-24s %3dx%-3d rooms=%-3d passages=%-3d %s\n",
			s.ID, s.Seed, s.Width, s.Height, s.Rooms, s.Passages, s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func showLayout(ctx context.Context, catalog *sqlite.Store, id string) error {
	ld, err := catalog.GetLayout(ctx, id)
	if err != nil {
		return err
	}
	layout, spawns, err := ld.Layout()
	if err != nil {
		return err
	}
	fmt.Print(render.Text(layout, spawns))
	return nil
}

func preview(ctx context.Context, cfg *config.Config, layout *dungeon.Layout, spawns []placement.Spawn) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	regen := func(ctx context.Context) (*dungeon.Layout, []placement.Spawn, error) {
		p := cfg.Params()
		p.UseRandomSeed = true
		l, err := dungeon.GenerateContext(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		return l, placement.Assign(l, placementOptions(cfg)), nil
	}
	return render.Preview(ctx, screen, layout, spawns, regen)
}
