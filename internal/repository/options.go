package repository

import "github.com/atech/cms/pkg/config"

// Backend names a storage strategy.
type Backend string

const (
	BackendFile Backend = "file"
	BackendKV   Backend = "kv"
	BackendSQL  Backend = "sql"
)

// Options carries everything Open needs. It is built once from config.
type Options struct {
	DataDir string

	DatabaseURL string
	ServiceKey  string

	KVURL    string
	KVToken  string
	KVPrefix string

	// Hosted marks a serverless deployment. Its local filesystem does not
	// persist, and projects need Postgres; the KV store takes the rest.
	Hosted   bool
	SQLDebug bool
}

// OptionsFromConfig translates the loaded configuration. Backend selection
// happens in SelectBackend.
func OptionsFromConfig(c *config.Config) Options {
	return Options{
		DataDir:     c.DataDir,
		DatabaseURL: c.DatabaseURL,
		ServiceKey:  c.SupabaseServiceKey,
		KVURL:       c.KVURL,
		KVToken:     c.KVToken,
		KVPrefix:    c.KVPrefix,
		Hosted:      c.Hosted,
		SQLDebug:    c.AppEnv == "development" || c.AppEnv == "test",
	}
}

// SelectBackend picks the strategy from the credentials present in opts.
// Postgres wins over KV, and KV over local files.
func SelectBackend(opts Options) Backend {
	switch {
	case opts.DatabaseURL != "" && opts.ServiceKey != "":
		return BackendSQL
	case opts.KVURL != "" && opts.KVToken != "":
		return BackendKV
	default:
		return BackendFile
	}
}

// ReadOnly reports whether every write is refused for opts: a hosted
// deployment left on local files.
func ReadOnly(opts Options) bool {
	return opts.Hosted && SelectBackend(opts) == BackendFile
}

// ProjectsReadOnly reports whether project writes are refused for opts.
// Hosted deployments write projects only to Postgres.
func ProjectsReadOnly(opts Options) bool {
	return opts.Hosted && SelectBackend(opts) != BackendSQL
}
