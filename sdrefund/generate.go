// Copyright 2026 Tamas Gulacsi. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/UNO-SOFT/sdrefund"
	"github.com/UNO-SOFT/sdrefund/archive"
	"github.com/UNO-SOFT/sdrefund/manifest"
	"github.com/UNO-SOFT/sdrefund/pdf"
	"github.com/UNO-SOFT/sdrefund/xlsx"
)

type generateConfig struct {
	In, Sheet, Charset string
	Out, Year          string
	BatchSize          int
	Concurrency        int
	PDF, Index, Zip    bool
}

func newGenerateCmd() *ffcli.Command {
	var cfg generateConfig
	fs := newFlagSet("generate")
	fs.StringVar(&cfg.Sheet, "sheet", "Work Orders", "sheet of the input workbook")
	fs.StringVar(&cfg.Charset, "charset", sdrefund.EncName, "charset of CSV or text input")
	fs.StringVar(&cfg.Out, "out", ".", "directory to create the output directory in")
	fs.StringVar(&cfg.Year, "year", "", "year in the output names (default: from the first agreement number)")
	fs.IntVar(&cfg.BatchSize, "batch-size", sdrefund.DefaultBatchSize, "forms per workbook")
	fs.IntVar(&cfg.Concurrency, "concurrency", 1, "number of workbooks generated at once")
	fs.BoolVar(&cfg.PDF, "pdf", false, "write a PDF preview next to each workbook")
	fs.BoolVar(&cfg.Index, "index", true, "write "+manifest.FileName)
	fs.BoolVar(&cfg.Zip, "zip", false, "bundle the output directory into a zip")
	return &ffcli.Command{Name: "generate", FlagSet: fs, Options: options,
		ShortUsage: "generate [flags] <work-orders.xlsx|.csv|.txt>",
		ShortHelp:  "generate refund form workbooks, one sheet per work order",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 0 {
				cfg.In = args[0]
			}
			_, err := generate(ctx, cfg, time.Now())
			return err
		},
	}
}

// readRecords reads the work orders from a workbook, a CSV or a text blob, by extension.
func readRecords(fn, sheet, charset string) ([]sdrefund.Record, error) {
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".xlsx", ".xlsm":
		fh, err := os.Open(fn)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		recs, err := xlsx.ReadRecords(fh, sheet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		return recs, nil
	case ".csv":
		return sdrefund.ReadCsvRecords(fn, charset)
	default:
		blob, err := sdrefund.ReadText(fn, charset)
		if err != nil {
			return nil, err
		}
		recs, stats := sdrefund.ParseText(blob)
		logStats(fn, stats)
		return recs, nil
	}
}

// generate writes the workbooks into a new directory under cfg.Out, and returns its path.
func generate(ctx context.Context, cfg generateConfig, now time.Time) (string, error) {
	recs, err := readRecords(cfg.In, cfg.Sheet, cfg.Charset)
	if err != nil {
		return "", err
	}
	logger.Info("read", "file", cfg.In, "works", len(recs))

	year := cfg.Year
	if year == "" {
		year = sdrefund.AgreementYear(recs, now)
	}
	batches, err := sdrefund.Batches(recs, cfg.BatchSize)
	if err != nil {
		return "", err
	}
	logger.Info("batches", "year", year, "count", len(batches), "size", cfg.BatchSize)

	dir := filepath.Join(cfg.Out, sdrefund.OutputDir(year, now))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	var mu sync.Mutex
	entries := make([]manifest.Batch, 0, len(batches))
	files := make([]string, 0, len(batches))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(max(1, cfg.Concurrency))
	for _, b := range batches {
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			names, entry, err := writeBatch(dir, year, b, cfg.PDF)
			if err != nil {
				return fmt.Errorf("batch %d: %w", b.Number, err)
			}
			mu.Lock()
			entries = append(entries, entry)
			files = append(files, names...)
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return dir, err
	}

	if cfg.Index {
		manifest.Sort(entries)
		title := fmt.Sprintf("Security deposit refunds %s (%d works)", year, len(recs))
		if err := writeFileAtomic(filepath.Join(dir, manifest.FileName), func(w io.Writer) error {
			return writeIndex(w, title, entries)
		}); err != nil {
			return dir, err
		}
		files = append(files, manifest.FileName)
	}
	if cfg.Zip {
		zipName := dir + ".zip"
		if err := writeFileAtomic(zipName, func(w io.Writer) error {
			return archive.WriteZip(w, os.DirFS(dir), files...)
		}); err != nil {
			return dir, err
		}
		logger.Info("bundled", "file", zipName, "files", len(files))
	}
	logger.Info("completed", "dir", dir, "workbooks", len(batches))
	return dir, nil
}

func writeIndex(w io.Writer, title string, entries []manifest.Batch) error {
	_, err := io.WriteString(w, manifest.Index(title, entries))
	return err
}

// writeBatch builds the Document of b and saves it (and its PDF preview) into dir.
func writeBatch(dir, year string, b sdrefund.Batch, withPDF bool) ([]string, manifest.Batch, error) {
	doc := sdrefund.BuildDocument(b)
	for _, s := range doc.Sheets {
		logger.Debug("sheet", "batch", b.Number, "name", s.Name)
	}
	name := sdrefund.BatchFileName(b.Number, year)
	if err := saveDocument(filepath.Join(dir, name), doc, newXLSXWriter); err != nil {
		return nil, manifest.Batch{}, err
	}
	logger.Info("saved", "file", name, "works", len(b.Records))
	names := []string{name}
	if withPDF {
		pdfName := strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
		if err := saveDocument(filepath.Join(dir, pdfName), doc, newPDFWriter(pdf.Options{})); err != nil {
			return names, manifest.Batch{}, err
		}
		names = append(names, pdfName)
	}
	return names, manifest.NewBatch(name, b, doc), nil
}
