// Package lister drives the dump and diff tools: it loads the definition
// tables and save files, extracts snapshots and prints the result.
package lister

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"totktools/common"
	liberr "totktools/internal/common"
	"totktools/internal/config"
	"totktools/internal/databuf"
	"totktools/internal/defs"
	"totktools/internal/differ"
	"totktools/internal/printers"
	"totktools/internal/sav"
	"totktools/internal/savedata"
	"totktools/printer"
)

// Summary messages
const (
	MsgNoFields      = "No fields found."
	MsgNoDifferences = "No differences found."
	MsgDumpComplete  = "Dump complete."
	MsgDiffComplete  = "Diff complete."
)

// Config mirrors the command line arguments of the dump and diff tools.
type Config struct {
	FieldsPath string
	EnumsPath  string
	Files      []string // one save file for a dump, two for a diff
	OutPath    string   // optional; output goes to OutputWriter when empty

	Separator string // between blocks; printers.DefaultSeparator when empty
	Label1    string
	Label2    string
	Layout    *savedata.Layout // nil selects savedata.DefaultLayout
	Stats     bool             // log per-type counts after a dump

	OutputWriter io.Writer     // defaults to os.Stdout
	Logger       common.Logger // defaults to no logging
}

// ApplySettings fills the definition paths, separator, labels and scan
// layout from tool settings. Fields already set are kept.
func (cfg *Config) ApplySettings(s config.Config) {
	if cfg.FieldsPath == "" {
		cfg.FieldsPath = s.FieldsPath
	}
	if cfg.EnumsPath == "" {
		cfg.EnumsPath = s.EnumsPath
	}
	if cfg.Separator == "" {
		cfg.Separator = s.Separator()
	}
	if cfg.Label1 == "" {
		cfg.Label1 = s.Label1
	}
	if cfg.Label2 == "" {
		cfg.Label2 = s.Label2
	}
	if cfg.Layout == nil && s.Layout != savedata.DefaultLayout {
		layout := s.Layout
		cfg.Layout = &layout
	}
}

type tables struct {
	fields *defs.FieldCache
	enums  *defs.EnumCache
}

// RunDump dumps every known field of cfg.Files[0].
func RunDump(cfg Config) error {
	log := common.OrNoOp(cfg.Logger)
	if len(cfg.Files) != 1 {
		return usageError("dump needs exactly one save file, got %d", len(cfg.Files))
	}

	tbl, err := loadTables(cfg, log)
	if err != nil {
		return err
	}

	log.Debug("Loading file... " + cfg.Files[0])
	buf, err := openSave(cfg.Files[0], log)
	if err != nil {
		return err
	}

	log.Debug("Creating extractor...")
	ex, err := newExtractor(cfg, tbl.fields, log)
	if err != nil {
		return err
	}

	log.Debug("Extracting file...")
	snap, err := ex.Extract(buf)
	if err != nil {
		return fmt.Errorf("extract %s: %w", cfg.Files[0], err)
	}

	if len(snap) == 0 {
		log.Info(MsgNoFields)
	} else {
		err = writeOutput(cfg, log, func(w io.Writer) error {
			dp := printers.NewDumpPrinter(w, printer.New(tbl.enums, tbl.fields), tbl.fields.Hashes())
			if cfg.Separator != "" {
				dp.SetSeparator(cfg.Separator)
			}
			if cfg.Stats {
				dp.SetCollectStats()
			}
			dp.PrintSnapshot(snap)
			if cfg.Stats {
				log.Info(dp.StatsText())
			}
			return dp.Err()
		})
		if err != nil {
			return err
		}
	}

	log.Info(MsgDumpComplete)
	return nil
}

// RunDiff prints the fields that differ between cfg.Files[0] and
// cfg.Files[1]. Both files are extracted concurrently.
func RunDiff(cfg Config) error {
	log := common.OrNoOp(cfg.Logger)
	if len(cfg.Files) != 2 {
		return usageError("diff needs exactly two save files, got %d", len(cfg.Files))
	}

	tbl, err := loadTables(cfg, log)
	if err != nil {
		return err
	}

	bufs := make([]*databuf.Buffer, len(cfg.Files))
	for i, path := range cfg.Files {
		log.Logf(common.SeverityDebug, "Loading file %d... %s", i+1, path)
		if bufs[i], err = openSave(path, log); err != nil {
			return err
		}
	}

	log.Debug("Creating extractor...")
	ex, err := newExtractor(cfg, tbl.fields, log)
	if err != nil {
		return err
	}

	snaps := make([]savedata.Snapshot, len(bufs))
	var g errgroup.Group
	for i := range bufs {
		g.Go(func() error {
			log.Logf(common.SeverityDebug, "Extracting file %d...", i+1)
			snap, err := ex.Extract(bufs[i])
			if err != nil {
				return fmt.Errorf("extract %s: %w", cfg.Files[i], err)
			}
			snaps[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Debug("Diffing save data...")
	diff := differ.Diff(snaps[0], snaps[1])

	if len(diff) == 0 {
		log.Info(MsgNoDifferences)
	} else {
		err = writeOutput(cfg, log, func(w io.Writer) error {
			dp := printers.NewDiffPrinter(w, printer.New(tbl.enums, tbl.fields), tbl.fields.Hashes())
			if cfg.Separator != "" {
				dp.SetSeparator(cfg.Separator)
			}
			dp.SetLabels(cfg.Label1, cfg.Label2)
			n := dp.PrintDiff(diff)
			log.Logf(common.SeverityDebug, "%d fields differ", n)
			return dp.Err()
		})
		if err != nil {
			return err
		}
	}

	log.Info(MsgDiffComplete)
	return nil
}

func loadTables(cfg Config, log common.Logger) (tables, error) {
	log.Debug("Loading enums...")
	enums, err := defs.LoadEnums(cfg.EnumsPath)
	if err != nil {
		return tables{}, err
	}

	log.Debug("Loading fields...")
	fields, err := defs.LoadFields(cfg.FieldsPath)
	if err != nil {
		return tables{}, err
	}
	log.Logf(common.SeverityDebug, "%d fields, %d enums loaded", fields.Len(), enums.Len())

	for _, f := range defs.ValidateFields(fields) {
		log.Warning(fmt.Sprintf("field %s (0x%08X) has unknown type %q", f.Name, f.Hash, f.Type))
	}
	return tables{fields: fields, enums: enums}, nil
}

func openSave(path string, log common.Logger) (*databuf.Buffer, error) {
	buf, err := databuf.Open(path)
	if err != nil {
		return nil, err
	}
	log.Logf(common.SeverityDebug, "%s: %s", path, humanize.IBytes(uint64(buf.Size())))
	if buf.Size() < sav.ScanStart {
		log.Warning(fmt.Sprintf("%s is smaller than the save header (%s)", path, humanize.IBytes(sav.ScanStart)))
	}
	return buf, nil
}

func newExtractor(cfg Config, fields *defs.FieldCache, log common.Logger) (*savedata.Extractor, error) {
	ex := savedata.NewExtractor(fields)
	ex.SetLogger(log)
	if cfg.Layout != nil {
		if err := ex.SetLayout(*cfg.Layout); err != nil {
			return nil, err
		}
	}
	return ex, nil
}

// writeOutput runs render against the output file, or against the output
// writer followed by a newline.
func writeOutput(cfg Config, log common.Logger, render func(w io.Writer) error) error {
	if cfg.OutPath != "" {
		log.Debug("Writing output to file... " + cfg.OutPath)
		f, err := os.Create(cfg.OutPath)
		if err != nil {
			return liberr.NewErrorMsg(sav.ErrSevError, sav.ErrFileError, fmt.Sprintf("create %s: %v", cfg.OutPath, err))
		}
		if err := render(f); err != nil {
			f.Close()
			return liberr.NewErrorMsg(sav.ErrSevError, sav.ErrFileError, fmt.Sprintf("write %s: %v", cfg.OutPath, err))
		}
		return f.Close()
	}

	log.Debug("Writing output to stdout...")
	w := cfg.OutputWriter
	if w == nil {
		w = os.Stdout
	}
	if err := render(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func usageError(format string, args ...interface{}) error {
	return liberr.NewErrorMsg(sav.ErrSevError, sav.ErrInvalidParamVal, fmt.Sprintf(format, args...))
}
