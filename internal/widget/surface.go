package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nats-io/nats.go"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

// Surface receives every refreshed summary.
type Surface interface {
	Name() string
	Push(ctx context.Context, s Summary) error
}

// FileSurface writes the summary as JSON, replacing the file atomically.
type FileSurface struct {
	path string
}

func NewFileSurface(path string) (*FileSurface, error) {
	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve widget file: %w", err)
	}
	return &FileSurface{path: expanded}, nil
}

func (f *FileSurface) Name() string { return "file" }

func (f *FileSurface) Path() string { return f.path }

func (f *FileSurface) Push(_ context.Context, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create widget directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".widget-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write widget file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

type publisher interface {
	Publish(subject string, data []byte) error
	Flush() error
}

// NATSSurface publishes the summary as JSON on a subject.
type NATSSurface struct {
	conn    publisher
	subject string
	close   func()
}

// NewNATSSurface connects to the server at url.
func NewNATSSurface(url, subject string) (*NATSSurface, error) {
	conn, err := nats.Connect(url, nats.Name(constants.AppName+"-widget"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	if subject == "" {
		subject = constants.DefaultNATSSubject
	}
	return &NATSSurface{conn: conn, subject: subject, close: conn.Close}, nil
}

func (n *NATSSurface) Name() string { return "nats" }

func (n *NATSSurface) Push(_ context.Context, s Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("publish widget summary: %w", err)
	}
	return n.conn.Flush()
}

func (n *NATSSurface) Close() {
	if n.close != nil {
		n.close()
	}
}
