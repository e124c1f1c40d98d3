package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/pkg/utils"
)

// maxDisplayNameLen keeps the printed table's name column from wrapping a
// terminal on the longer multi-entity names.
const maxDisplayNameLen = 60

// acFlags collects repeated --ac flags into a slice.
type acFlags []int

func (a *acFlags) String() string {
	strs := make([]string, len(*a))
	for i, v := range *a {
		strs[i] = strconv.Itoa(v)
	}
	return strings.Join(strs, ",")
}

func (a *acFlags) Set(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid --ac value %q: %w", value, err)
	}
	*a = append(*a, n)
	return nil
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 0, "number of results to print (0 = config default)")
	var acs acFlags
	fs.Var(&acs, "ac", "AC number to search (repeatable)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: akshara search [flags] <query>")
		os.Exit(1)
	}
	queryText := strings.Join(fs.Args(), " ")
	if len(acs) == 0 {
		fmt.Println("At least one --ac is required")
		os.Exit(1)
	}

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

	reqID := requestID()
	q := &models.SearchQuery{
		Query:   queryText,
		ACs:     acs,
		Options: cfg.Rank.ToRankOptions(),
		Limit:   *limit,
	}
	if q.Limit == 0 {
		q.Limit = cfg.Rank.DefaultLimit
	}

	logger.Info("cli search", zap.String("request_id", reqID), zap.String("query", queryText), zap.Ints("acs", acs))
	response, err := comp.engine.Search(context.Background(), q, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if response == nil {
		fmt.Fprintln(os.Stderr, "Search was cancelled")
		os.Exit(1)
	}
	printResults(response)
}

func printResults(response *models.SearchResponse) {
	fmt.Printf("query: %q   results: %d   elapsed: %dms\n\n", response.Query, response.Total, response.QueryTime)
	for i, r := range response.Results {
		name := r.Row.VoterNameRaw
		if r.Field == models.ScopeRelative {
			name = r.Row.RelativeNameRaw
		}
		fmt.Printf("%3d. serial=%-6d field=%-8s %s\n", i+1, r.Row.SerialNo, r.Field, utils.Truncate(name, maxDisplayNameLen))
	}
	for _, f := range response.Failures {
		fmt.Fprintf(os.Stderr, "ac %d failed: %v\n", f.AC, f.Err)
	}
}
