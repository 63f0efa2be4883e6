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
	"sort"
	"sync"

	"lanesim/internal/combat"
	"lanesim/internal/config"
	"lanesim/internal/logging"
	"lanesim/internal/scenario"
)

func main() {
	var cfgDir, pattern, out string
	var workers int
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "", "settings dir (lanesim.yaml); empty uses defaults")
	flag.StringVar(&pattern, "scenario", "", "scenario file or glob")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.IntVar(&workers, "workers", 8, "parallel scenarios in batch mode")
	flag.BoolVar(&saveLog, "log", true, "record the event log for a single scenario")
	flag.Parse()

	settings, uc, err := config.LoadAll(cfgDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.Setup(os.Stderr, settings.LogLevel)

	cat, err := combat.NewCatalog(uc)
	if err != nil {
		logger.Error("invalid unit catalog", "error", err)
		os.Exit(2)
	}

	files, err := filepath.Glob(pattern)
	if err == nil && len(files) == 0 {
		err = fmt.Errorf("no scenario matches %q", pattern)
	}
	if err != nil {
		logger.Error("scenario lookup failed", "error", err)
		os.Exit(2)
	}
	sort.Strings(files)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(files) == 1 {
		rep, err := runFile(ctx, files[0], cat, settings, saveLog)
		if rep == nil {
			logger.Error("scenario failed", "file", files[0], "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(out, combat.MarshalPretty(rep), 0644); err != nil {
			logger.Error("write report", "error", err)
			os.Exit(1)
		}
		logger.Info("scenario finished", "scenario", rep.Scenario, "ticks", rep.Ticks, "failures", len(rep.Failures), "out", out)
		fmt.Printf("Single scenario finished. Passed=%v, ticks=%d -> %s\n", rep.Passed(), rep.Ticks, out)
		if !rep.Passed() {
			os.Exit(1)
		}
		return
	}

	sum := runBatch(ctx, files, cat, settings, workers, logger)
	if err := os.WriteFile(out, combat.MarshalPretty(sum), 0644); err != nil {
		logger.Error("write summary", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Batch %d done, %d passed -> %s\n", sum.Runs, sum.Passed, filepath.Base(out))
	if sum.Passed != sum.Runs {
		os.Exit(1)
	}
}

func runFile(ctx context.Context, path string, cat *combat.Catalog, s *config.Settings, record bool) (*scenario.Report, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	return scenario.Run(ctx, sc, cat, s, record)
}

type result struct {
	File           string   `json:"file"`
	Scenario       string   `json:"scenario,omitempty"`
	Ticks          int      `json:"ticks"`
	Passed         bool     `json:"passed"`
	FriendlyHealth int      `json:"friendly_health"`
	EnemyHealth    int      `json:"enemy_health"`
	Failures       []string `json:"failures,omitempty"`
	Error          string   `json:"error,omitempty"`
}

type summary struct {
	Runs    int      `json:"runs"`
	Passed  int      `json:"passed"`
	Results []result `json:"results"`
}

// runBatch plays every file on its own engine across a fixed worker pool.
// Results keep the order of files.
func runBatch(ctx context.Context, files []string, cat *combat.Catalog, s *config.Settings, workers int, logger *slog.Logger) summary {
	results := make([]result, len(files))
	jobs := make(chan int, len(files))
	wg := sync.WaitGroup{}
	for w := 0; w < max(workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = summarize(ctx, files[i], cat, s, logger)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sum := summary{Runs: len(files), Results: results}
	for _, r := range results {
		if r.Passed {
			sum.Passed++
		}
	}
	return sum
}

func summarize(ctx context.Context, path string, cat *combat.Catalog, s *config.Settings, logger *slog.Logger) result {
	res := result{File: path}
	rep, err := runFile(ctx, path, cat, s, false)
	if rep == nil {
		res.Error = err.Error()
		logger.Warn("scenario failed", "file", path, "error", err)
		return res
	}
	res.Scenario = rep.Scenario
	res.Ticks = rep.Ticks
	res.Failures = rep.Failures
	res.Error = rep.Error
	res.Passed = rep.Passed()
	if n := len(rep.Snapshots); n > 0 {
		last := rep.Snapshots[n-1]
		res.FriendlyHealth, res.EnemyHealth = last.FriendlyHealth, last.EnemyHealth
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("scenario interrupted", "file", path, "ticks", rep.Ticks)
	}
	logger.Debug("scenario done", "file", path, "passed", res.Passed, "ticks", res.Ticks)
	return res
}
