// Copyright 2021, 2026 Tamas Gulacsi. All rights reserved.

// Command sdrefund generates security deposit refund forms from work order lists.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/peterbourgon/ff/v3/ffyaml"

	"github.com/UNO-SOFT/sdrefund"
	"github.com/UNO-SOFT/sdrefund/pdf"
	"github.com/UNO-SOFT/sdrefund/xlsx"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

// options make every flag settable from SDREFUND_* environment variables
// and from the YAML file named by -config.
var options = []ff.Option{
	ff.WithEnvVarPrefix("SDREFUND"),
	ff.WithConfigFileFlag("config"),
	ff.WithConfigFileParser(ffyaml.Parser),
	ff.WithAllowMissingConfigFile(true),
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.String("config", "", "YAML config file")
	return fs
}

func Main() error {
	slog.SetDefault(logger)

	app := ffcli.Command{
		Name:       "sdrefund",
		ShortUsage: "sdrefund [flags] <generate|parse|repair|pdf> [flags] [args]",
		FlagSet:    newFlagSet("sdrefund"),
		Options:    options,
		Subcommands: []*ffcli.Command{
			newGenerateCmd(),
			newParseCmd(),
			newRepairCmd(),
			newPDFCmd(),
		},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

func newParseCmd() *ffcli.Command {
	fs := newFlagSet("parse")
	flagEnc := fs.String("charset", sdrefund.EncName, "text charset name")
	flagOut := fs.String("o", "", "output CSV file (default stdout)")
	return &ffcli.Command{Name: "parse", FlagSet: fs, Options: options,
		ShortUsage: "parse [-o out.csv] <work-orders.txt>",
		ShortHelp:  "parse a text blob of work orders into CSV",
		Exec: func(ctx context.Context, args []string) error {
			var fn string
			if len(args) != 0 {
				fn = args[0]
			}
			blob, err := sdrefund.ReadText(fn, *flagEnc)
			if err != nil {
				return err
			}
			recs, stats := sdrefund.ParseText(blob)
			logStats(fn, stats)
			if *flagOut == "" || *flagOut == "-" {
				return sdrefund.WriteCsvRecords(os.Stdout, recs)
			}
			return writeFileAtomic(*flagOut, func(w io.Writer) error {
				return sdrefund.WriteCsvRecords(w, recs)
			})
		},
	}
}

func newRepairCmd() *ffcli.Command {
	fs := newFlagSet("repair")
	return &ffcli.Command{Name: "repair", FlagSet: fs, Options: options,
		ShortUsage: "repair <workbook.xlsx|directory>...",
		ShortHelp:  "reapply the current layout rules to generated workbooks",
		Exec: func(ctx context.Context, args []string) error {
			files, err := workbooks(args)
			if err != nil {
				return err
			}
			for _, fn := range files {
				if err := ctx.Err(); err != nil {
					return err
				}
				doc, err := readDocument(fn)
				if err != nil {
					return err
				}
				if err := saveDocument(fn, sdrefund.RepairDocument(doc), newXLSXWriter); err != nil {
					return err
				}
				logger.Info("repaired", "file", fn, "sheets", len(doc.Sheets))
			}
			return nil
		},
	}
}

func newPDFCmd() *ffcli.Command {
	fs := newFlagSet("pdf")
	flagLandscape := fs.Bool("L", false, "landscape orientation (default: portrait)")
	flagFontScale := fs.Float64("f", 1, "font scale")
	return &ffcli.Command{Name: "pdf", FlagSet: fs, Options: options,
		ShortUsage: "pdf <workbook.xlsx|directory>...",
		ShortHelp:  "render workbooks as PDF, next to them",
		Exec: func(ctx context.Context, args []string) error {
			files, err := workbooks(args)
			if err != nil {
				return err
			}
			opts := pdf.Options{Landscape: *flagLandscape, FontScale: *flagFontScale}
			for _, fn := range files {
				if err := ctx.Err(); err != nil {
					return err
				}
				doc, err := readDocument(fn)
				if err != nil {
					return err
				}
				out := strings.TrimSuffix(fn, filepath.Ext(fn)) + ".pdf"
				if err := saveDocument(out, doc, newPDFWriter(opts)); err != nil {
					return err
				}
				logger.Info("rendered", "file", out, "pages", len(doc.Sheets))
			}
			return nil
		},
	}
}

func logStats(fn string, stats sdrefund.ParseStats) {
	logger.Info("parsed", "file", fn, "entries", stats.Entries,
		"records", stats.Records, "skipped", stats.Skipped)
	if stats.DroppedAmounts != 0 {
		logger.Warn("amounts beyond the second are dropped", "file", fn, "dropped", stats.DroppedAmounts)
	}
}

// workbooks lists the .xlsx files of the arguments, expanding directories.
// Excel's lock files (~$*) are skipped.
func workbooks(args []string) ([]string, error) {
	var files []string
	for _, a := range args {
		fi, err := os.Stat(a)
		if err != nil {
			return files, err
		}
		if !fi.IsDir() {
			files = append(files, a)
			continue
		}
		des, err := os.ReadDir(a)
		if err != nil {
			return files, err
		}
		for _, de := range des {
			if nm := de.Name(); !de.IsDir() && strings.HasSuffix(nm, ".xlsx") && !strings.HasPrefix(nm, "~$") {
				files = append(files, filepath.Join(a, nm))
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no workbooks given: %w", flag.ErrHelp)
	}
	return files, nil
}

func readDocument(fn string) (*sdrefund.Document, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	doc, err := xlsx.ReadDocument(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return doc, nil
}

func newXLSXWriter(w io.Writer) sdrefund.Writer { return xlsx.NewWriter(w) }

func newPDFWriter(opts pdf.Options) func(io.Writer) sdrefund.Writer {
	return func(w io.Writer) sdrefund.Writer { return pdf.NewWriter(w, opts) }
}

// saveDocument writes doc with the Writer returned by newWriter into fn.
func saveDocument(fn string, doc *sdrefund.Document, newWriter func(io.Writer) sdrefund.Writer) error {
	return writeFileAtomic(fn, func(fh io.Writer) error {
		w := newWriter(fh)
		if err := w.WriteDocument(doc); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})
}

// writeFileAtomic writes fn through a temporary file in the same directory,
// so fn is either the old or the complete new content.
func writeFileAtomic(fn string, write func(io.Writer) error) error {
	fh, err := os.CreateTemp(filepath.Dir(fn), ".*"+filepath.Ext(fn))
	if err != nil {
		return err
	}
	defer os.Remove(fh.Name())
	if err := write(fh); err != nil {
		fh.Close()
		return fmt.Errorf("%s: %w", fn, err)
	}
	if err := fh.Close(); err != nil {
		return err
	}
	if err := os.Chmod(fh.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(fh.Name(), fn)
}
