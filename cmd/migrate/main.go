// Command migrate applies the embedded schema migrations.
//
//	migrate [-dsn URL] up | down | steps N | version | force V
//
// Without -dsn the connection comes from MILLION_DB_DSN, then from the
// MILLION_DB_* variables the server reads.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	"github.com/JaimeStill/million/internal/config"
	"github.com/JaimeStill/million/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "MILLION_DB_DSN"

type command struct {
	name string
	n    int
}

func main() {
	dsn := flag.String("dsn", "", "postgres:// connection URL")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [-dsn URL] up | down | steps N | version | force V")
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd, err := parseCommand(flag.Args())
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	url, err := resolveDSN(*dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cmd, url); err != nil {
		log.Fatal(err)
	}
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New("missing command")
	}

	cmd := command{name: args[0]}
	switch cmd.name {
	case "up", "down", "version":
		if len(args) != 1 {
			return command{}, fmt.Errorf("%s takes no arguments", cmd.name)
		}
	case "steps", "force":
		if len(args) != 2 {
			return command{}, fmt.Errorf("%s needs exactly one number", cmd.name)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return command{}, fmt.Errorf("%s: %w", cmd.name, err)
		}
		if cmd.name == "steps" && n == 0 {
			return command{}, errors.New("steps must be non-zero")
		}
		cmd.n = n
	default:
		return command{}, fmt.Errorf("unknown command %q", cmd.name)
	}
	return cmd, nil
}

func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	var db database.Config
	if err := db.Finalize(config.DatabaseEnv); err != nil {
		return "", fmt.Errorf("database config: %w", err)
	}
	return db.URL(), nil
}

func run(cmd command, url string) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer m.Close()

	switch cmd.name {
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("version %d (dirty: %v)\n", v, dirty)
		return nil
	case "force":
		return m.Force(cmd.n)
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(cmd.n)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("schema already current")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.name, err)
	}
	fmt.Printf("%s complete\n", cmd.name)
	return nil
}
