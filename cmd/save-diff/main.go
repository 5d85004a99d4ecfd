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
	flag.StringVar(&outPath, "o", "", "Output diff to a file")
	flag.StringVar(&outPath, "out", "", "Output diff to a file")
	label1 := flag.String("label1", "", "Label for the first file's values")
	label2 := flag.String("label2", "", "Label for the second file's values")
	logLevel := flag.String("log", "", "Log level: debug, info, warning or error")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: save-diff [options] <file1> <file2>\n\nDiff two TOTK save files.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "save-diff : Error: expected two save files")
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
		Label1:       *label1,
		Label2:       *label2,
		OutputWriter: os.Stdout,
		Logger:       common.NewStdLogger(level),
	}
	cfg.ApplySettings(settings)

	if err := lister.RunDiff(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
