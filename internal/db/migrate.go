package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/exp/slices"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const migrationsDir = "migrations"

var ErrInvalidMigrationTarget = errors.New("invalid migration target")

// MigrationTarget is the schema version a migration run ends at: either a
// goose version or the latest embedded migration.
type MigrationTarget struct {
	latest  bool
	version int64
}

var LatestMigration = MigrationTarget{latest: true}

func ParseMigrationTarget(text string) (target MigrationTarget, err error) {
	if text == "latest" {
		return LatestMigration, nil
	}
	version, err := strconv.ParseInt(text, 10, 64)
	if err != nil || version < 0 {
		err = fmt.Errorf("%w: %q is neither \"latest\" nor a version number", ErrInvalidMigrationTarget, text)
		return
	}
	return MigrationTarget{version: version}, nil
}

func (t MigrationTarget) String() string {
	if t.latest {
		return "latest"
	}
	return strconv.FormatInt(t.version, 10)
}

// EmbeddedMigrations lists the versions compiled into the binary, ascending.
func EmbeddedMigrations() (versions []int64, err error) {
	goose.SetBaseFS(Migrations)
	migrations, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	for _, migration := range migrations {
		versions = append(versions, migration.Version)
	}
	return
}

// Migrate moves the schema to target, rolling back when target is below the
// current version. It reports the versions before and after the run.
func Migrate(ctx context.Context, connectionURL string, target MigrationTarget) (from int64, to int64, err error) {
	err = checkEmbedded(target)
	if err != nil {
		return
	}
	db, err := goose.OpenDBWithDriver("pgx", connectionURL)
	if err != nil {
		err = fmt.Errorf("failed to connect with database: %w", err)
		return
	}
	defer func() {
		dbErr := db.Close()
		if dbErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database connection: %w", dbErr))
		}
	}()

	goose.SetBaseFS(Migrations)
	err = goose.SetDialect("postgres")
	if err != nil {
		err = fmt.Errorf("failed to set dialect: %w", err)
		return
	}
	from, err = goose.GetDBVersion(db)
	if err != nil {
		err = fmt.Errorf("failed to read schema version: %w", err)
		return
	}
	err = migrate(ctx, db, from, target)
	if err != nil {
		return
	}
	to, err = goose.GetDBVersion(db)
	return
}

// checkEmbedded fails for versions the binary has no migration for. Version 0
// is the empty schema.
func checkEmbedded(target MigrationTarget) error {
	if target.latest || target.version == 0 {
		return nil
	}
	versions, err := EmbeddedMigrations()
	if err != nil {
		return err
	}
	if !slices.Contains(versions, target.version) {
		return fmt.Errorf("%w: no migration with version %d", ErrInvalidMigrationTarget, target.version)
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB, current int64, target MigrationTarget) error {
	switch {
	case target.latest:
		return goose.UpContext(ctx, db, migrationsDir)
	case target.version < current:
		return goose.DownToContext(ctx, db, migrationsDir, target.version)
	default:
		return goose.UpToContext(ctx, db, migrationsDir, target.version)
	}
}
