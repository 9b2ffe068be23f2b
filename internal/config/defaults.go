package config

const (
	defaultDataDir        = "~/.local/share/notesift"
	defaultLogDir         = "~/.local/share/notesift/logs"
	defaultExportDir      = "~/notesift-exports"
	defaultBackendBaseURL = "http://127.0.0.1:8000"
	defaultBackendTimeout = 120
	defaultWorkers        = 1
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		Backend: Backend{
			BaseURL:        defaultBackendBaseURL,
			TimeoutSeconds: defaultBackendTimeout,
		},
		Workflow: Workflow{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
