package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fluxbit/logfold/internal/config"
	"github.com/fluxbit/logfold/internal/engine"
	"github.com/fluxbit/logfold/internal/pipeline"
)

func main() {
	// Command-line flags
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	input := flag.String("input", "", "JSONL batch file to process (.zst supported)")
	out := flag.String("out", "", "Report output path (.json or .msgpack)")
	follow := flag.Bool("follow", false, "Tail the input file and process in windows")
	workers := flag.Int("workers", 0, "Worker count override (0 = hardware parallelism)")
	metricsAddr := flag.String("metrics", "", "Prometheus listen address override (e.g. :9114)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: logfold -input logs.jsonl [-follow] [-out report.json]")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	var metrics *pipeline.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = pipeline.NewMetrics(reg)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			log.Printf("Metrics listening on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	p := pipeline.New(cfg, metrics)
	log.Printf("logfold started (workers: %d)", p.Processor().Workers())

	if *follow {
		runFollow(p, *input, *out)
		return
	}
	runOnce(p, *input, *out)
}

// runOnce processes the whole file as a single batch.
func runOnce(p *pipeline.Pipeline, input, out string) {
	lines, err := pipeline.LoadLines(input)
	if err != nil {
		log.Fatalf("Failed to load batch: %v", err)
	}
	log.Printf("Loaded %d log entries from %s", len(lines), input)

	res, err := p.ProcessBatch(lines)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyPopulation) {
			log.Fatalf("No valid log entries in %s", input)
		}
		log.Fatalf("Processing failed: %v", err)
	}

	fmt.Println(res.Stats.Summary())
	fmt.Printf("Rejections: %d\n", len(res.Rejections))
	for i, msg := range res.Rejections {
		if i == 5 {
			fmt.Printf("  ... and %d more\n", len(res.Rejections)-5)
			break
		}
		fmt.Printf("  - %s\n", msg)
	}

	writeReport(out, res)
}

// runFollow tails the input until interrupted, writing a fresh report
// after every window.
func runFollow(p *pipeline.Pipeline, input, out string) {
	ctx, cancel := context.WithCancel(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Printf("Received signal: %v. Shutting down...", sig)
		cancel()
	}()

	err := p.Follow(ctx, input, func(res *pipeline.Result) {
		log.Printf("Window %s: %d logs, %d rejections",
			res.BatchID, res.Stats.TotalCount, len(res.Rejections))
		writeReport(out, res)
	})
	if err != nil {
		log.Fatalf("Follow failed: %v", err)
	}

	log.Println("logfold exited gracefully.")
}

func writeReport(out string, res *pipeline.Result) {
	if out == "" {
		return
	}
	if err := pipeline.WriteReport(out, res); err != nil {
		log.Printf("Report write error: %v", err)
		return
	}
	log.Printf("Report written to %s", out)
}
