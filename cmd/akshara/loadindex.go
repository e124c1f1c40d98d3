package main

import (
	"context"
	"encoding/binary"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/akshara/internal/keys"
	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/internal/normalize"
	"github.com/hyperjump/akshara/internal/postings"
	"github.com/hyperjump/akshara/internal/storage"
	"github.com/hyperjump/akshara/internal/support"
	"github.com/hyperjump/akshara/pkg/utils"
)

// The col* constants give the fixed column order loadindex expects, matching the
// electoral-roll export shape the ingestion pipeline treats as an external input:
// serial_no, voter_name, relative_name, epic_no, age, gender, house_no, part_no.
const (
	colSerial = iota
	colVoterName
	colRelativeName
	colEPICNo
	colAge
	colGender
	colHouseNo
	colPartNo
	csvColumnCount
)

func runLoadIndex() {
	fs := flag.NewFlagSet("loadindex", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	ac := fs.Int("ac", 0, "AC number the rows belong to")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: akshara loadindex [flags] <csv-file>")
		os.Exit(1)
	}
	if *ac == 0 {
		fmt.Println("--ac is required")
		os.Exit(1)
	}
	csvPath := fs.Arg(0)

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

	rows, err := storage.NewSQLiteRowStore(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("open row store", zap.Error(err))
	}
	defer rows.Close()

	idx, err := postings.NewSQLitePostingStore(cfg.Storage.IndexPath)
	if err != nil {
		logger.Fatal("open posting store", zap.Error(err))
	}
	defer idx.Close()

	var supportIdx *support.BleveRowIndex
	if cfg.Support.BleveIndexPath != "" {
		supportIdx, err = support.NewBleveRowIndex(cfg.Support.BleveIndexPath)
		if err != nil {
			logger.Warn("support index unavailable during load", zap.Error(err))
			supportIdx = nil
		} else {
			defer supportIdx.Close()
		}
	}

	f, err := os.Open(csvPath)
	if err != nil {
		logger.Fatal("open csv", zap.Error(err))
	}
	defer f.Close()

	n, err := loadCSV(context.Background(), f, *ac, rows, idx, supportIdx, cfg.Rank.ToRankOptions(), logger)
	if err != nil {
		logger.Fatal("load failed", zap.Error(err))
	}
	fmt.Printf("Loaded %d row(s) for AC %d\n", n, *ac)
}

// builders accumulates, per (family, key), the set of row ids that key
// should map to, so the whole file can be read once before any posting
// list is written.
type builders map[models.IndexFamily]map[string][]uint32

func (b builders) add(fam models.IndexFamily, key string, rowID uint32) {
	if b[fam] == nil {
		b[fam] = make(map[string][]uint32)
	}
	b[fam][key] = append(b[fam][key], rowID)
}

func loadCSV(
	ctx context.Context,
	r io.Reader,
	ac int,
	rows *storage.SQLiteRowStore,
	idx *postings.SQLitePostingStore,
	supportIdx *support.BleveRowIndex,
	opts models.RankOptions,
	logger *zap.Logger,
) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = csvColumnCount

	post := make(builders)
	var rowID uint32
	var count int

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read csv row %d: %w", count+1, err)
		}
		rowID++
		count++

		serial, _ := strconv.ParseInt(record[colSerial], 10, 64)
		age, _ := strconv.Atoi(record[colAge])
		partNo, _ := strconv.Atoi(record[colPartNo])

		display := models.DisplayRow{
			RowID:           int64(rowID),
			VoterNameRaw:    record[colVoterName],
			RelativeNameRaw: record[colRelativeName],
			SerialNo:        serial,
			EPICNo:          record[colEPICNo],
			Age:             age,
			Gender:          record[colGender],
			HouseNo:         record[colHouseNo],
			PartNo:          partNo,
		}
		voterNorm := normalize.NormStrict(display.VoterNameRaw)
		relativeNorm := normalize.NormStrict(display.RelativeNameRaw)

		if err := rows.InsertRow(ctx, ac, display, voterNorm, relativeNorm); err != nil {
			return count, fmt.Errorf("insert row %d: %w", rowID, err)
		}

		indexRowField(post, models.FieldVoter, display.VoterNameRaw, rowID, opts)
		indexRowField(post, models.FieldRelative, display.RelativeNameRaw, rowID, opts)

		if supportIdx != nil {
			if err := supportIdx.Index(ctx, support.RowDoc{
				AC: ac, RowID: int64(rowID),
				VoterNameRaw: display.VoterNameRaw, RelativeNameRaw: display.RelativeNameRaw,
			}); err != nil {
				logger.Warn("support index failed for row", zap.Uint32("row_id", rowID), zap.Error(err))
			}
		}
	}

	for fam, keyRows := range post {
		for key, ids := range keyRows {
			if err := idx.Put(ctx, fam, ac, key, packU32(ids), len(ids)); err != nil {
				return count, fmt.Errorf("write posting list %s/%s: %w", fam.Form, key, err)
			}
		}
	}

	return count, nil
}

// indexRowField builds and records the strict/exact/loose key sets for one
// name field of one row, across the family that field belongs to.
func indexRowField(post builders, field models.Field, name string, rowID uint32, opts models.RankOptions) {
	if name == "" {
		return
	}
	for _, form := range []models.NormForm{models.FormStrict, models.FormExact, models.FormLoose} {
		fam := models.IndexFamily{Form: form, Field: field}
		for _, key := range keys.BuildForForm(form, name, opts) {
			post.add(fam, key, rowID)
		}
	}
}

func packU32(vals []uint32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}
