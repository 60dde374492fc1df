package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := prefs.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx, err := cli.NewContext(store, nil)
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("expected empty listing, got %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: wellnest-") {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total, keeping most recent 14)") {
		t.Errorf("unexpected listing:\n%s", out.String())
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx, err := cli.NewContext(prefs.NewMemory(), nil)
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}
	ctx.Out = &bytes.Buffer{}

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected backups of a memory store to fail")
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := ctx.Water.SetGoal(3); err != nil {
		t.Fatalf("set goal failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created: "))

	if err := ctx.Water.SetGoal(10); err != nil {
		t.Fatalf("set goal failed: %v", err)
	}

	ctx.In = strings.NewReader("n\n")
	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Fatalf("expected cancellation, got %q", out.String())
	}

	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("reload after restore failed: %v", err)
	}
	goal, err := ctx.Water.Goal()
	if err != nil {
		t.Fatalf("goal failed: %v", err)
	}
	if goal != 3 {
		t.Errorf("expected restored goal 3, got %d", goal)
	}
}

func TestBackupRestoreCmd_MissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&BackupRestoreCmd{BackupFile: "wellnest-19990101-0000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected a missing backup to fail")
	}
}
