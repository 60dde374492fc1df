package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

// stubTray points the tray lookup at dir and reports pid as a running tray process.
func stubTray(t *testing.T, dir string) {
	t.Helper()
	oldConfig, oldFind := userConfigDirFunc, findProcessFunc
	t.Cleanup(func() {
		userConfigDirFunc = oldConfig
		findProcessFunc = oldFind
	})
	userConfigDirFunc = func() (string, error) { return dir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: constants.TrayExecutablePrefix}, nil
	}
}

func writeLockfile(t *testing.T, dir, content string) {
	t.Helper()
	lockDir := filepath.Join(dir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lockDir, constants.NotifierLockfileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func serverPort(url string) string {
	parts := strings.Split(url, ":")
	return parts[len(parts)-1]
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	stubTray(t, tempDir)

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/wellnest/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	malformed := []struct {
		name    string
		content string
	}{
		{name: "two parts", content: "8080|12345"},
		{name: "no separators", content: "invalid"},
		{name: "empty secret", content: "8080|12345|"},
		{name: "empty port", content: "|12345|testsecret123"},
		{name: "port out of range", content: "99999|12345|testsecret123"},
		{name: "bad pid", content: "8080|abc|testsecret123"},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(lockfilePath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
				t.Errorf("expected error for %q", tt.content)
			}
		})
	}

	if err := os.WriteFile(lockfilePath, []byte("8080|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}

	findProcessFunc = func(pid int) (ps.Process, error) { return nil, nil }
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing process")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: constants.TrayExecutablePrefix}, nil
	}
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if port != "8080" {
		t.Errorf("expected port 8080, got %s", port)
	}
	if secret != "testsecret123" {
		t.Errorf("expected secret testsecret123, got %s", secret)
	}
}

func TestTrayPostAndDismiss(t *testing.T) {
	var (
		mu        sync.Mutex
		posted    WebhookPayload
		dismissed int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Header.Get("X-Wellnest-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		switch r.URL.Path {
		case "/":
			if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if posted.Text == "fail" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		case "/dismiss":
			var p dismissPayload
			_ = json.NewDecoder(r.Body).Decode(&p)
			dismissed = p.ID
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dir := t.TempDir()
	stubTray(t, dir)
	writeLockfile(t, dir, serverPort(server.URL)+"|4242|test-secret")

	tray := NewTray()
	ctx := context.Background()
	n := Notification{ID: 7, Title: "Hydrate", Body: "Drink up", Action: "Got it!"}
	if err := tray.Post(ctx, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mu.Lock()
	if posted.ID != 7 || posted.Text != "Drink up" || posted.Action != "Got it!" {
		t.Errorf("unexpected payload: %+v", posted)
	}
	if posted.DurationMs != constants.NotificationDurationMs {
		t.Errorf("expected duration %d, got %d", constants.NotificationDurationMs, posted.DurationMs)
	}
	mu.Unlock()

	if err := tray.Dismiss(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mu.Lock()
	if dismissed != 7 {
		t.Errorf("expected dismissed id 7, got %d", dismissed)
	}
	mu.Unlock()

	if err := tray.Post(ctx, Notification{Body: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}

	writeLockfile(t, dir, serverPort(server.URL)+"|4242|wrong-secret")
	if err := tray.Post(ctx, n); err == nil {
		t.Error("expected error for wrong secret")
	}
}

type failing struct{ err error }

func (f failing) Post(context.Context, Notification) error { return f.err }
func (f failing) Dismiss(context.Context, int) error       { return f.err }

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	if err := c.Post(context.Background(), Notification{Title: "Hydrate", Body: "Drink up", Action: "Got it!"}); err != nil {
		t.Fatal(err)
	}
	want := "🔔 Hydrate\n   Drink up\n   [Got it!]\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFallback(t *testing.T) {
	var buf bytes.Buffer
	f := NewFallback(failing{errors.New("tray down")}, NewConsole(&buf))

	if err := f.Post(context.Background(), Notification{Title: "T", Body: "B"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "T") {
		t.Errorf("expected console output, got %q", buf.String())
	}
	if err := f.Dismiss(context.Background(), 1); err != nil {
		t.Errorf("unexpected dismiss error: %v", err)
	}

	both := NewFallback(failing{errors.New("a")}, failing{errors.New("b")})
	if err := both.Post(context.Background(), Notification{}); err == nil {
		t.Error("expected error when both notifiers fail")
	}
}

func TestNew(t *testing.T) {
	if _, ok := New("tray", nil).(*Tray); !ok {
		t.Error("expected *Tray for tray mode")
	}
	if _, ok := New("console", nil).(*Console); !ok {
		t.Error("expected *Console for console mode")
	}
	if _, ok := New("auto", nil).(*Fallback); !ok {
		t.Error("expected *Fallback for auto mode")
	}
}
