// Package main is the akshara CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/akshara/internal/config"
	"github.com/hyperjump/akshara/internal/postings"
	"github.com/hyperjump/akshara/internal/query"
	"github.com/hyperjump/akshara/internal/server"
	"github.com/hyperjump/akshara/internal/storage"
	"github.com/hyperjump/akshara/internal/support"
	"github.com/hyperjump/akshara/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/akshara/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory, so running the CLI from
// a project checkout picks up that project's own config.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "search":
		runSearch()
	case "serve":
		runServe()
	case "loadindex":
		runLoadIndex()
	case "export":
		runExport()
	case "lookup":
		runLookup()
	case "version", "--version", "-v":
		fmt.Printf("akshara version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// components holds the row store and posting-list store every subcommand
// wires an Engine over.
type components struct {
	rows     *storage.SQLiteRowStore
	postings *postings.SQLitePostingStore
	engine   *query.Engine
}

func openComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	rows, err := storage.NewSQLiteRowStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open row store: %w", err)
	}
	idx, err := postings.NewSQLitePostingStore(cfg.Storage.IndexPath)
	if err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("open posting store: %w", err)
	}
	return &components{
		rows:     rows,
		postings: idx,
		engine:   query.NewEngine(rows, idx, logger),
	}, nil
}

func (c *components) Close() {
	_ = c.postings.Close()
	_ = c.rows.Close()
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("config loaded", zap.String("config_path", resolvedPath), zap.Bool("debug", debugMode))

	comp, err := openComponents(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize components", zap.Error(err))
	}
	defer comp.Close()

	if used, err := storage.DiskUsageBytes(cfg.Storage.DatabasePath, cfg.Storage.IndexPath, cfg.Support.BleveIndexPath); err != nil {
		logger.Warn("disk usage check failed", zap.Error(err))
	} else {
		logger.Info("store disk usage", zap.Int64("bytes", used))
	}

	if cfg.Support.BleveIndexPath != "" {
		supportIdx, err := support.NewBleveRowIndex(cfg.Support.BleveIndexPath)
		if err != nil {
			logger.Warn("support index unavailable, operator lookup disabled", zap.Error(err))
		} else {
			defer supportIdx.Close()
		}
	}

	srv := server.NewServer(comp.engine, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func requestID() string {
	return uuid.NewString()
}

func printUsage() {
	fmt.Println(`akshara - Devanagari fuzzy name search over electoral rolls

Usage:
  akshara serve [flags]                    Start the HTTP API
  akshara search [flags] <query>           Search one or more ACs and print a ranked table
  akshara loadindex [flags] <csv-file>     Build the row store and posting-list indexes for one AC
  akshara export [flags] <query>           Run a search and write the ranked results to .xlsx
  akshara lookup [flags] <text>            Operator free-text lookup with spelling suggestions
  akshara version                          Show version
  akshara help                             Show this help

Serve Flags:
  --config string    Config file path (default: /usr/local/etc/akshara/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path
  --ac int            AC number to search (repeatable)
  --limit int         Number of results to print (default: from config)

Loadindex Flags:
  --config string    Config file path
  --ac int            AC number the rows belong to

Export Flags:
  --config string    Config file path
  --ac int            AC number to search
  --out string        Output .xlsx path
  --limit int         Number of rows to export

Lookup Flags:
  --config string    Config file path
  --ac int            AC number to resolve display names for (0 = row ids only)
  --limit int         Number of hits to print

Examples:
  akshara serve
  akshara search --ac 101 "राम कुमार"
  akshara loadindex --ac 101 rolls-101.csv
  akshara export --ac 101 --out shortlist.xlsx "राम कुमार"
  akshara lookup --ac 101 "राम कुमार"`)
}
