package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/akshara/internal/keyword"
	"github.com/hyperjump/akshara/internal/storage"
	"github.com/hyperjump/akshara/internal/support"
	"github.com/hyperjump/akshara/pkg/utils"
)

// runLookup is the operator side channel: a plain free-text lookup over raw
// name fields, no phonetic/visual scoring. If nothing matches, it falls back
// to a spelling suggestion drawn from the same index's own term dictionary.
func runLookup() {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	ac := fs.Int("ac", 0, "AC number to resolve display names for (0 = row ids only)")
	limit := fs.Int("limit", 10, "number of hits to print")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: akshara lookup [flags] <text>")
		os.Exit(1)
	}
	queryText := strings.Join(fs.Args(), " ")

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Support.BleveIndexPath == "" {
		fmt.Println("support.bleve_index_path is not configured")
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	supportIdx, err := support.NewBleveRowIndex(cfg.Support.BleveIndexPath)
	if err != nil {
		logger.Fatal("open support index", zap.Error(err))
	}
	defer supportIdx.Close()

	ctx := context.Background()
	hits, err := supportIdx.Search(ctx, queryText, *limit)
	if err != nil {
		logger.Fatal("support search failed", zap.Error(err))
	}

	if len(hits) == 0 {
		checker := keyword.NewSpellChecker(supportIdx)
		result, checkErr := checker.Check(queryText)
		if checkErr != nil {
			logger.Warn("spellcheck failed", zap.Error(checkErr))
		} else if result.HasCorrections {
			fmt.Printf("no hits for %q; did you mean %q?\n", queryText, result.CorrectedQuery)
			return
		}
		fmt.Printf("no hits for %q\n", queryText)
		return
	}

	var rows *storage.SQLiteRowStore
	if *ac != 0 {
		rows, err = storage.NewSQLiteRowStore(cfg.Storage.DatabasePath)
		if err != nil {
			logger.Fatal("open row store", zap.Error(err))
		}
		defer rows.Close()
	}

	for i, h := range hits {
		if rows != nil && h.AC == *ac {
			if display, dispErr := rows.FetchDisplayRows(ctx, h.AC, []int64{h.RowID}); dispErr == nil && len(display) == 1 {
				fmt.Printf("%3d. ac=%-6d serial=%-6d score=%.3f voter=%s relative=%s\n",
					i+1, h.AC, display[0].SerialNo, h.Score, display[0].VoterNameRaw, display[0].RelativeNameRaw)
				continue
			}
		}
		fmt.Printf("%3d. ac=%-6d row_id=%-8d score=%.3f\n", i+1, h.AC, h.RowID, h.Score)
	}
}
