package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Source string `help:"Source store path or connection string to copy data from."`
	Seed   bool   `help:"Add the sample habits when the store has none."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.deleteExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized wellnest storage at: %s\n", ctx.Store.Path())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		n, err := c.migrateData(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Migration completed successfully! (%d keys)\n", n)
	}

	if c.Seed {
		n, err := ctx.Habits.SeedDefaults()
		if err != nil {
			return fmt.Errorf("failed to seed habits: %w", err)
		}
		if n > 0 {
			ctx.Printf("Added %d sample habits.\n", n)
		}
	}

	ctx.CheckRollover()
	return nil
}

// deleteExisting removes a file-backed store. Other backends are reset with 'data clear'.
func (c *InitCmd) deleteExisting(ctx *cli.Context) error {
	switch ctx.Store.(type) {
	case *prefs.SQLite, *prefs.JSONFile:
	default:
		return fmt.Errorf("--force only applies to file stores; use 'wellnest data clear' for %s", ctx.Store.Path())
	}

	dbPath := ctx.Store.Path()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		ctx.Printf("Deleted existing store at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) (int, error) {
	src, err := prefs.Open(c.Source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	return prefs.Copy(ctx.Store, src)
}
