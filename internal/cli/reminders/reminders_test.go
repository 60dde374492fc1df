package reminders

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
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

func TestReminderArmCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	interval := 15
	if err := (&ReminderArmCmd{Interval: &interval}).Run(ctx); err != nil {
		t.Fatalf("reminder arm failed: %v", err)
	}
	if !strings.Contains(out.String(), "Water reminder set for 15 minutes") {
		t.Errorf("unexpected output %q", out.String())
	}

	st, err := ctx.Reminder.State()
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if st.Phase != models.ReminderArmed || st.Interval != 15 {
		t.Errorf("expected armed at 15 minutes, got %+v", st)
	}

	s, err := ctx.Settings.Get()
	if err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if !s.WaterReminderEnabled || s.WaterReminderInterval != 15 {
		t.Errorf("expected settings to mirror the reminder, got %+v", s)
	}
}

func TestReminderArmCmd_InvalidInterval(t *testing.T) {
	ctx, _ := setupTestDB(t)

	interval := 7
	if err := (&ReminderArmCmd{Interval: &interval}).Run(ctx); err == nil {
		t.Error("expected interval 7 to be rejected")
	}
	st, _ := ctx.Reminder.State()
	if st.Phase != models.ReminderDisabled {
		t.Errorf("expected reminder to stay disabled, got %s", st.Phase)
	}
}

func TestReminderCancelCmd_KeepsInterval(t *testing.T) {
	ctx, out := setupTestDB(t)

	interval := 90
	if err := (&ReminderArmCmd{Interval: &interval}).Run(ctx); err != nil {
		t.Fatalf("reminder arm failed: %v", err)
	}
	if err := (&ReminderCancelCmd{}).Run(ctx); err != nil {
		t.Fatalf("reminder cancel failed: %v", err)
	}

	st, _ := ctx.Reminder.State()
	if st.Phase != models.ReminderDisabled || st.Interval != 90 {
		t.Errorf("expected disabled with interval 90, got %+v", st)
	}
	s, _ := ctx.Settings.Get()
	if s.WaterReminderEnabled {
		t.Error("expected settings to show the reminder disabled")
	}

	out.Reset()
	if err := (&ReminderStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("reminder status failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Reminders disabled") {
		t.Errorf("unexpected status %q", out.String())
	}
}

func TestReminderArmCmd_DefaultsToStoredInterval(t *testing.T) {
	ctx, _ := setupTestDB(t)

	interval := 5
	if err := (&ReminderArmCmd{Interval: &interval}).Run(ctx); err != nil {
		t.Fatalf("reminder arm failed: %v", err)
	}
	if err := (&ReminderArmCmd{}).Run(ctx); err != nil {
		t.Fatalf("reminder re-arm failed: %v", err)
	}
	if got, _ := ctx.Reminder.Interval(); got != 5 {
		t.Errorf("expected stored interval 5, got %d", got)
	}
}
