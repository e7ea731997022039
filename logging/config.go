package logging

// Config defines the [logging] table of the familiar configuration file.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the FAMILIAR_LOG_LEVEL environment variable.
	Level string `toml:"level" yaml:"level" mapstructure:"level"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	// Can be enabled with the FAMILIAR_LOG_CALLER=true environment variable.
	ReportCaller bool `toml:"report_caller" yaml:"report_caller" mapstructure:"report_caller"`

	// File configures logging to a file.
	File FileSinkConfig `toml:"file" yaml:"file" mapstructure:"file"`

	// Format configures the appearance of the log output.
	Format FormatConfig `toml:"format" yaml:"format" mapstructure:"format"`

	// Verbose forces debug level. Set from --verbose, never from the file.
	Verbose bool `toml:"-" yaml:"-" mapstructure:"-"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// Path is the full path to the log file. "~" and $VARS are expanded.
	Path string `toml:"path" yaml:"path" mapstructure:"path"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string `toml:"preset" yaml:"preset" jsonschema:"description=default | simple | json" mapstructure:"preset"`
	// DisableTimestamp disables the timestamp from the "default" and "simple" formats.
	DisableTimestamp bool `toml:"disable_timestamp" yaml:"disable_timestamp" mapstructure:"disable_timestamp"`
	// DisableComponent disables the component name from the "default" and "simple" formats.
	DisableComponent bool `toml:"disable_component" yaml:"disable_component" mapstructure:"disable_component"`
	// StructuredToStderr controls when logs are sent to stderr.
	// Can be "auto" (default), "always", or "never". Logs never go to stdout.
	StructuredToStderr string `toml:"structured_to_stderr" yaml:"structured_to_stderr" jsonschema:"description=auto | always | never" mapstructure:"structured_to_stderr"`
}
