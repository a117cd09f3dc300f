package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	dsnFlag           = "dsn"
	migrationPathFlag = "migrations-path"
	downFlag          = "down"

	dsnEnvName = "STOREFRONT_STORAGE_SQL_DB"
)

func main() {
	dsn, migrationsPath, down := getFlagsValues()
	validateFlags(dsn, migrationsPath)
	makeMigrations(dsn, migrationsPath, down)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() (dsn, migrations string, down bool) {
	dsnArg := pflag.StringP(
		dsnFlag, "d", os.Getenv(dsnEnvName), "postgres connection url",
	)
	migrationsPath := pflag.StringP(
		migrationPathFlag, "m", "migrations", "migrations directory",
	)
	downArg := pflag.Bool(downFlag, false, "roll back all migrations")
	pflag.Parse()
	return *dsnArg, *migrationsPath, *downArg
}

func validateFlags(dsn, migrationsPath string) {
	var errs []error

	if dsn == "" {
		errs = append(errs, fmt.Errorf(
			"--%s flag or %s: required", dsnFlag, dsnEnvName,
		))
	}

	if migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		fallDown()
	}
}

var errDSNScheme = errors.New(
	"dsn must be a postgres:// url, key/value connection strings are not supported",
)

// migrateURL points a postgres url at the pgx v5 migrate driver.
func migrateURL(dsn string) (string, error) {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		rest, ok := strings.CutPrefix(dsn, scheme)
		if !ok {
			continue
		}
		u, err := url.Parse("pgx5://" + rest)
		if err != nil {
			return "", fmt.Errorf("%w: %w", errDSNScheme, err)
		}
		return u.String(), nil
	}
	return "", errDSNScheme
}

func makeMigrations(dsn, migrationsPath string, down bool) {
	databaseURL, err := migrateURL(dsn)
	if err != nil {
		slog.Error("invalid dsn", "err", err)
		fallDown()
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		databaseURL,
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}

	m.Log = NewMigrationLogger()

	apply, direction := m.Up, "up"
	if down {
		apply, direction = m.Down, "down"
	}

	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "direction", direction, "err", err)
		fallDown()
	}
	m.Log.Printf("migration applied: %s\n", direction)
}

func fallDown() {
	os.Exit(2)
}
