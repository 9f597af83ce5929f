// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config (populated from PG_* environment
// variables) and retries until the database answers a ping. Migrate applies
// goose migrations from an fs.FS, usually an embedded directory, through
// pgx's database/sql bridge. Healthcheck returns a readiness probe for the
// HTTP server.
//
//	pool, err := pg.Connect(ctx, cfg.Postgres)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg.Postgres, postgres.Migrations, "migrations", log); err != nil {
//	    return err
//	}
//
// IsNotFoundError and IsDuplicateKeyError classify driver errors.
package pg
