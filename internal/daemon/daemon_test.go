package daemon

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/alarm"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
)

type fakeReminder struct {
	mu      sync.Mutex
	resyncs int
	alarms  []string
}

func (f *fakeReminder) Resync(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resyncs++
	return nil
}

func (f *fakeReminder) HandleAlarm(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alarms = append(f.alarms, id)
}

func (f *fakeReminder) counts() (int, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resyncs, append([]string(nil), f.alarms...)
}

type fakeRollover struct {
	mu     sync.Mutex
	checks int
}

func (f *fakeRollover) Check(time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.checks == 2, nil
}

func (f *fakeRollover) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks
}

func start(t *testing.T, opts Options) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(opts).Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("daemon did not stop")
		}
	})
	return cancel
}

func TestRunResyncsOnStartAndTick(t *testing.T) {
	rem := &fakeReminder{}
	roll := &fakeRollover{}
	start(t, Options{Reminder: rem, Rollover: roll, Tick: 20 * time.Millisecond})

	assert.Eventually(t, func() bool {
		n, _ := rem.counts()
		return n >= 3 && roll.count() >= 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunReloadsChangedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellnest.json")
	store := prefs.NewJSONFile(path)
	require.NoError(t, store.Init())

	rem := &fakeReminder{}
	start(t, Options{
		StorePath: path,
		Store:     store,
		Reminder:  rem,
		Tick:      time.Hour,
		Debounce:  10 * time.Millisecond,
	})

	assert.Eventually(t, func() bool {
		n, _ := rem.counts()
		return n >= 1
	}, time.Second, 5*time.Millisecond)

	// Another process writes the file.
	other := prefs.NewJSONFile(path)
	require.NoError(t, other.Load())
	require.NoError(t, prefs.SetBool(other, constants.KeyReminderEnabled, true))

	assert.Eventually(t, func() bool {
		n, _ := rem.counts()
		v, _ := prefs.GetBool(store, constants.KeyReminderEnabled, false)
		return n >= 2 && v
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunDeliversAlarms(t *testing.T) {
	rem := &fakeReminder{}
	local := alarm.NewLocal(true)
	start(t, Options{Alarms: local, Reminder: rem, Tick: time.Hour})
	assert.Eventually(t, func() bool {
		n, _ := rem.counts()
		return n >= 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, local.ScheduleExact(context.Background(), constants.ReminderAlarmID, time.Now().Add(10*time.Millisecond)))
	assert.Eventually(t, func() bool {
		_, ids := rem.counts()
		return len(ids) == 1 && ids[0] == constants.ReminderAlarmID
	}, 2*time.Second, 5*time.Millisecond)
}

func TestMatches(t *testing.T) {
	path := filepath.Join("data", "wellnest.db")
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"rename into place", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"wal", fsnotify.Event{Name: path + "-wal", Op: fsnotify.Write}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join("data", "notes.txt"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(path, tt.ev))
		})
	}
}
