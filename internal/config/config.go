// Package config reads the optional savetools.ini tool configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"

	"totktools/common"
	liberr "totktools/internal/common"
	"totktools/internal/printers"
	"totktools/internal/sav"
	"totktools/internal/savedata"
)

// Config holds the settings shared by the dump and diff tools.
type Config struct {
	FieldsPath    string
	EnumsPath     string
	SeparatorLine string
	Label1        string
	Label2        string
	LogLevel      common.Severity
	Layout        savedata.Layout
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FieldsPath:    DefaultFieldsPath,
		EnumsPath:     DefaultEnumsPath,
		SeparatorLine: DefaultSeparatorLine,
		Label1:        printers.DefaultLabel1,
		Label2:        printers.DefaultLabel2,
		LogLevel:      common.SeverityInfo,
		Layout:        savedata.DefaultLayout,
	}
}

// Separator returns the block separator: the separator line on its own line.
func (c Config) Separator() string {
	return "\n" + c.SeparatorLine + "\n"
}

// Load reads path over the defaults. Relative definition paths in the file
// are resolved against the file's directory. When optional is set a missing
// file yields the defaults.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, liberr.NewErrorMsg(sav.ErrSevError, sav.ErrFileError,
			fmt.Sprintf("read config %s: %v", path, err))
	}

	if err := cfg.apply(data, filepath.Dir(path)); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse reads INI text over the defaults. Paths are kept as written.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.apply(data, ""); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) apply(data []byte, baseDir string) error {
	file, err := ini.Load(data)
	if err != nil {
		return configError("parse: %v", err)
	}

	defsSec := file.Section(DefinitionsSectionName)
	c.FieldsPath = resolve(baseDir, defsSec.Key(FieldsKey).MustString(c.FieldsPath), defsSec.HasKey(FieldsKey))
	c.EnumsPath = resolve(baseDir, defsSec.Key(EnumsKey).MustString(c.EnumsPath), defsSec.HasKey(EnumsKey))

	outSec := file.Section(OutputSectionName)
	c.SeparatorLine = outSec.Key(SeparatorKey).MustString(c.SeparatorLine)
	c.Label1 = outSec.Key(Label1Key).MustString(c.Label1)
	c.Label2 = outSec.Key(Label2Key).MustString(c.Label2)

	if key := file.Section(LogSectionName).Key(LevelKey); key.String() != "" {
		level, err := common.ParseSeverity(key.String())
		if err != nil {
			return configError("[%s] %s: %v", LogSectionName, LevelKey, err)
		}
		c.LogLevel = level
	}

	if file.HasSection(ScanSectionName) {
		if err := c.applyScan(file.Section(ScanSectionName)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) applyScan(sec *ini.Section) error {
	fields := []struct {
		key string
		dst *int
	}{
		{StartKey, &c.Layout.Start},
		{EndKey, &c.Layout.End},
		{StrideKey, &c.Layout.Stride},
	}
	for _, f := range fields {
		if !sec.HasKey(f.key) {
			continue
		}
		v, err := parseUint32(sec.Key(f.key).String())
		if err != nil {
			return configError("[%s] %s: %v", ScanSectionName, f.key, err)
		}
		*f.dst = int(v)
	}
	if sec.HasKey(SentinelKey) {
		v, err := parseUint32(sec.Key(SentinelKey).String())
		if err != nil {
			return configError("[%s] %s: %v", ScanSectionName, SentinelKey, err)
		}
		c.Layout.Sentinel = v
	}
	if err := c.Layout.Validate(); err != nil {
		return configError("[%s]: %v", ScanSectionName, err)
	}
	return nil
}

// parseUint32 accepts decimal or 0x-prefixed hex.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	return uint32(v), err
}

func resolve(baseDir, path string, fromFile bool) string {
	if !fromFile || baseDir == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func configError(format string, args ...interface{}) error {
	return liberr.NewErrorMsg(sav.ErrSevError, sav.ErrConfig, fmt.Sprintf(format, args...))
}

// LoadTool loads the file named by a -config flag. An empty path falls back
// to DefaultFilename in the working directory, which may be absent.
func LoadTool(path string) (Config, error) {
	if path == "" {
		return Load(DefaultFilename, true)
	}
	return Load(path, false)
}
