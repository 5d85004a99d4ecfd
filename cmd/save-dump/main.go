package main

import (
	"flag"
	"fmt"
	"os"

	"totktools/common"
	"totktools/internal/config"
	"totktools/internal/lister"
)

func main() {
	configPath := flag.String("config", "", "Tool configuration file (default "+config.DefaultFilename+" if present)")
	fieldsPath := flag.String("fields", "", "Field definition table (.json or .yaml)")
	enumsPath := flag.String("enums", "", "Enum definition table (.json or .yaml)")
	var outPath string
	flag.StringVar(&outPath, "o", "", "Output dump to a file")
	flag.StringVar(&outPath, "out", "", "Output dump to a file")
	logLevel := flag.String("log", "", "Log level: debug, info, warning or error")
	stats := flag.Bool("stats", false, "Log per-type field counts")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: save-dump [options] <file>\n\nDump a TOTK save file.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "save-dump : Error: expected exactly one save file")
		flag.Usage()
		os.Exit(1)
	}

	settings, err := config.LoadTool(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level := settings.LogLevel
	if *logLevel != "" {
		if level, err = common.ParseSeverity(*logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := lister.Config{
		FieldsPath:   *fieldsPath,
		EnumsPath:    *enumsPath,
		Files:        flag.Args(),
		OutPath:      outPath,
		Stats:        *stats,
		OutputWriter: os.Stdout,
		Logger:       common.NewStdLogger(level),
	}
	cfg.ApplySettings(settings)

	if err := lister.RunDump(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
