package config

const (
	// DefaultFilename is looked up in the working directory when no
	// configuration file is named explicitly.
	DefaultFilename = "savetools.ini"

	// savetools.ini keys
	DefinitionsSectionName = "definitions"
	FieldsKey              = "fields"
	EnumsKey               = "enums"

	OutputSectionName = "output"
	SeparatorKey      = "separator"
	Label1Key         = "label1"
	Label2Key         = "label2"

	LogSectionName = "log"
	LevelKey       = "level"

	ScanSectionName = "scan"
	StartKey        = "start"
	EndKey          = "end"
	StrideKey       = "stride"
	SentinelKey     = "sentinel"
)

// Defaults
const (
	DefaultFieldsPath    = "assets/fields.json"
	DefaultEnumsPath     = "assets/enums.json"
	DefaultSeparatorLine = "------"
)
