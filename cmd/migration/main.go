package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/riskibarqy/club-lineup/db/migrations"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
)

var logger = newLogger()

// newLogger falls back to info when LOG_LEVEL is not a known level.
func newLogger() *logging.Logger {
	level, err := logging.ParseLevel(os.Getenv("LOG_LEVEL"))
	l := logging.New(logging.Options{
		Level:       level,
		ServiceName: "club-lineup-migration",
		Environment: strings.TrimSpace(os.Getenv("APP_ENV")),
	})
	if err != nil {
		l.Warn("ignoring LOG_LEVEL", "error", err)
	}
	return l
}

type command struct {
	usage string
	args  int
	run   func(m *migrate.Migrate, args []string) error
}

var commands = map[string]command{
	"up": {usage: "up", run: func(m *migrate.Migrate, _ []string) error {
		if err := ignoreNoChange(m.Up()); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	}},
	"down": {usage: "down [steps]", run: func(m *migrate.Migrate, args []string) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Steps(-steps)); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
		return nil
	}},
	"version": {usage: "version", run: printVersion},
	"force": {usage: "force <version>", args: 1, run: func(m *migrate.Migrate, args []string) error {
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced migration version", "version", version)
		return nil
	}},
	"goto": {usage: "goto <version>", args: 1, run: func(m *migrate.Migrate, args []string) error {
		target, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Migrate(target)); err != nil {
			return err
		}
		logger.Info("migrated", "version", target)
		return nil
	}},
}

func main() {
	defer func() { _ = logger.Sync() }()

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(args[0]))]
	if !ok || len(args)-1 < cmd.args {
		return errUsage
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}

	m, source, err := newMigrator(normalizeDBURL(dbURL))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer closeMigrator(m)

	logger.Debug("migration source", "source", source)
	return cmd.run(m, args[1:])
}

func printVersion(m *migrate.Migrate, _ []string) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
	return nil
}

// newMigrator reads migrations from MIGRATIONS_DIR when set and from the
// schema embedded in the binary otherwise.
func newMigrator(dbURL string) (*migrate.Migrate, string, error) {
	dir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if dir == "" {
		src, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return nil, "", fmt.Errorf("open embedded migrations: %w", err)
		}
		m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
		return m, "embedded", err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve migrations dir %q: %w", dir, err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil, "", fmt.Errorf("migrations dir %q not found", abs)
	}
	sourceURL := "file://" + filepath.ToSlash(abs)
	m, err := migrate.New(sourceURL, dbURL)
	return m, sourceURL, err
}

// parseSteps defaults to a single step.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || steps < 1 {
		return 0, fmt.Errorf("down steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("version must be a non-negative integer, got %q", raw)
	}
	return int(v), nil
}

func parseTarget(raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("target version must be a non-negative integer, got %q", raw)
	}
	return uint(v), nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		logger.Warn("close migrator", "error", err)
	}
}

// normalizeDBURL mirrors the API's connection tweaks: the pooler flag when
// DB_DISABLE_PREPARED_BINARY_RESULT is on, and an application_name.
func normalizeDBURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "postgres" && parsed.Scheme != "postgresql") {
		return raw
	}
	q := parsed.Query()
	if on, _ := strconv.ParseBool(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")); on && q.Get("disable_prepared_binary_result") == "" {
		q.Set("disable_prepared_binary_result", "yes")
	}
	if q.Get("application_name") == "" {
		q.Set("application_name", "club-lineup-migration")
	}
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintf(os.Stderr, "usage: %s <command>\n\ncommands:\n", name)
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "  %s %s\n", name, commands[n].usage)
	}
}
