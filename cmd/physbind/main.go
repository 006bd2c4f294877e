package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/milk9111/physbind/config"
	"github.com/milk9111/physbind/debug"
	"github.com/milk9111/physbind/loader"
	"github.com/milk9111/physbind/physics"
	"github.com/milk9111/physbind/worker"
)

func main() {
	configPath := flag.String("config", "", "world config yaml (defaults are used when empty)")
	sceneName := flag.String("scene", "stack.yaml", "scene file, embedded name or path")
	steps := flag.Int("steps", 0, "run this many steps synchronously and exit (0 runs until interrupted)")
	watch := flag.Bool("watch", false, "reload world settings and scenes when their files change")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	w, err := worker.New(cfg, worker.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	opts := []physics.Option{physics.WithWorker(w), physics.WithLogger(logger)}
	var collector *debug.Collector
	if cfg.Debug {
		collector = debug.NewCollector()
		opts = append(opts, physics.WithDebugger(collector))
	}
	pctx := physics.NewContext(opts...)

	mounted, err := mountScene(pctx, *sceneName, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { mounted.Unmount() }()

	if *steps > 0 {
		for i := 0; i < *steps; i++ {
			w.Step(cfg.Dt())
			pctx.Update()
		}
		report(logger, w, pctx.Registry(), collector)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Error("worker failed", "err", err)
			stop()
		}
	}()

	var changes <-chan string
	if *watch {
		watcher, err := config.NewWatcher(watchDirs(*configPath)...)
		if err != nil {
			log.Fatal(err)
		}
		defer watcher.Close()
		changes = watcher.Events
	}

	update := time.NewTicker(cfg.StepInterval())
	defer update.Stop()
	status := time.NewTicker(time.Second)
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			report(logger, w, pctx.Registry(), collector)
			return
		case <-update.C:
			pctx.Update()
		case <-status.C:
			frames, events := w.Dropped()
			logger.Debug("status", "steps", w.Steps(), "bodies", len(w.Bodies()), "dropped_frames", frames, "dropped_events", events)
		case path, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			switch {
			case *configPath != "" && sameFile(path, *configPath):
				reloadWorld(logger, w, *configPath)
			case strings.HasSuffix(path, ".tengo") || sameFile(filepath.Base(path), filepath.Base(*sceneName)):
				next, err := mountScene(pctx, *sceneName, mounted)
				if err != nil {
					logger.Warn("scene reload failed", "path", path, "err", err)
					continue
				}
				mounted = next
			}
		}
	}
}

// mountScene loads name and mounts it. prev is unmounted only after the new
// scene mounted.
func mountScene(pctx *physics.Context, name string, prev *loader.Mounted) (*loader.Mounted, error) {
	spec, err := loader.LoadScene(name)
	if err != nil {
		return nil, err
	}
	m, err := loader.Remount(pctx, spec, prev)
	if err != nil {
		return nil, err
	}
	pctx.Logger().Info("scene mounted", "scene", spec.Name, "count", len(m.Names()))
	return m, nil
}

func reloadWorld(logger *slog.Logger, w *worker.Worker, path string) {
	cfg, err := config.Load(path)
	if err != nil {
		logger.Warn("config reload failed", "path", path, "err", err)
		return
	}
	w.Send(physics.Command{Op: physics.OpSetGravity, Props: physics.Triplet(cfg.Gravity)})
	w.Send(physics.Command{Op: physics.OpSetIterations, Props: cfg.Iterations})
	logger.Info("config reloaded", "gravity", cfg.Gravity, "iterations", cfg.Iterations)
}

func watchDirs(configPath string) []string {
	var dirs []string
	if configPath != "" {
		dirs = append(dirs, filepath.Dir(configPath))
	}
	for _, dir := range []string{filepath.Join("loader", "scenes"), filepath.Join("loader", "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

func report(logger *slog.Logger, w *worker.Worker, reg *physics.Registry, collector *debug.Collector) {
	for _, id := range w.Bodies() {
		st, ok := w.State(id)
		if !ok {
			continue
		}
		logger.Info("body", "uuid", id, "position", st.Position, "sleeping", st.Sleeping)
	}
	logger.Info("registry", "refs", reg.RefCount(), "synced", len(reg.Synced()))
	if collector != nil {
		added, removed := collector.Totals()
		logger.Info("debug totals", "added", added, "removed", removed, "live", collector.Len())
	}
}
