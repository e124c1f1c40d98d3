package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/pkg/utils"
)

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	ac := fs.Int("ac", 0, "AC number to search")
	out := fs.String("out", "shortlist.xlsx", "output .xlsx path")
	limit := fs.Int("limit", 50, "number of rows to export")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: akshara export [flags] <query>")
		os.Exit(1)
	}
	if *ac == 0 {
		fmt.Println("--ac is required")
		os.Exit(1)
	}
	queryText := strings.Join(fs.Args(), " ")

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comp, err := openComponents(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize components", zap.Error(err))
	}
	defer comp.Close()

	q := &models.SearchQuery{
		Query:   queryText,
		ACs:     []int{*ac},
		Options: cfg.Rank.ToRankOptions(),
		Limit:   *limit,
	}
	response, err := comp.engine.Search(context.Background(), q, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if response == nil {
		fmt.Fprintln(os.Stderr, "Search was cancelled")
		os.Exit(1)
	}

	if err := writeShortlist(*out, response); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d row(s) to %s\n", len(response.Results), *out)
}

// writeShortlist writes response's ranked results to an .xlsx workbook for
// manual review by election officials: one row per match, with columns
// rank, serial number, matched field, voter name and relative name.
func writeShortlist(path string, response *models.SearchResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Shortlist"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Rank", "Serial No", "Field", "Voter Name", "Relative Name"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range response.Results {
		row := i + 2
		values := []interface{}{i + 1, r.Row.SerialNo, r.Field.String(), r.Row.VoterNameRaw, r.Row.RelativeNameRaw}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
