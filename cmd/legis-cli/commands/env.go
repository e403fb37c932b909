package commands

import (
	"context"
	"database/sql"
	"legiscraper/lib/billstore"
	"legiscraper/lib/scrapers/legislature"
)

type envKey struct{}

// env is everything a command needs, built once flags and config have
// been read.
type env struct {
	config Config
	format outputFormat
	client *legislature.Client
}

func newEnv(cfg Config, format outputFormat) *env {
	return &env{
		config: cfg,
		format: format,
		client: legislature.NewClient(cfg.clientOptions()),
	}
}

func withEnv(ctx context.Context, e *env) context.Context {
	return context.WithValue(ctx, envKey{}, e)
}

func getEnv(ctx context.Context) *env {
	return ctx.Value(envKey{}).(*env)
}

func (e *env) directory() *legislature.Directory {
	return legislature.NewDirectory(legislature.DirectoryOptions{
		Fetcher:    e.client,
		LocatorUrl: e.config.SessionLocator,
		LinkBase:   e.config.SessionLinkBase,
	})
}

func (e *env) billOptions() legislature.BillOptions {
	return legislature.BillOptions{
		Fetcher:      e.client,
		DocumentHost: e.config.DocumentHost,
	}
}

// openStore opens the configured database, the caller closes it.
func (e *env) openStore() (billstore.Store, *sql.DB, error) {
	db, err := e.config.Database.OpenDB(billstore.Schema)
	if err != nil {
		return billstore.Store{}, nil, err
	}
	return billstore.NewStore(db), db, nil
}

// resolveSession turns a loose session name ("regular", "first special")
// into the session's full display name.
func (e *env) resolveSession(ctx context.Context, year int, name string) (legislature.Session, error) {
	return e.directory().Find(ctx, year, name)
}
