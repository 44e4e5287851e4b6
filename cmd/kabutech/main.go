package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/EddWithSauce/KabutechMushyModel/internal/classifier"
	"github.com/EddWithSauce/KabutechMushyModel/internal/config"
	"github.com/EddWithSauce/KabutechMushyModel/internal/engine"
	"github.com/EddWithSauce/KabutechMushyModel/internal/input"
	"github.com/EddWithSauce/KabutechMushyModel/internal/logging"
	"github.com/EddWithSauce/KabutechMushyModel/internal/output/file"
	"github.com/EddWithSauce/KabutechMushyModel/internal/output/multi"
	"github.com/EddWithSauce/KabutechMushyModel/internal/output/report"
	"github.com/EddWithSauce/KabutechMushyModel/internal/session"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <image>\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "Classifies one grow-bag photo and prints cultivation guidance.")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	imagePath := flag.Arg(0)

	cfg := config.Load()
	logging.Init(logging.ParseLevel(cfg.Logging.Level))

	// A missing image is fatal before anything else runs — no env prompts,
	// no model load, no log entry.
	if _, err := os.Stat(imagePath); err != nil {
		log.Fatalf("image path not found: %v", err)
	}

	rules, err := engine.LoadRuleset(cfg.Engine.RulesPath)
	if err != nil {
		log.Fatalf("failed to load rules: %v", err)
	}
	if t := cfg.Engine.ConfidenceThreshold; t >= 0 {
		rules.ConfidenceThreshold = t
	}

	cls, err := classifier.NewONNX(cfg.Model.Path, cfg.Model.Classes)
	if err != nil {
		log.Fatalf("failed to load classifier: %v", err)
	}

	logSink, err := file.New(cfg.Output.LogPath)
	if err != nil {
		cls.Close()
		log.Fatalf("failed to open session log: %v", err)
	}

	s := session.New(cls, engine.New(rules), multi.New(report.New(os.Stdout), logSink))
	defer s.Close()

	env := input.Collect(os.Stdin, os.Stdout)

	if _, err := s.Run(context.Background(), imagePath, env); err != nil {
		s.Close()
		log.Fatalf("session failed: %v", err)
	}

	logPath := cfg.Output.LogPath
	if abs, err := filepath.Abs(logPath); err == nil {
		logPath = abs
	}
	fmt.Fprintf(os.Stderr, "logged to %s\n", logPath)
}
