package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileStoreName = "sessions.json"

// FileKV is the default persistence backend: one JSON document of key/value
// pairs on local disk, rewritten atomically (temp file + rename) on every
// Set. Suits the single-writer model, there is exactly one active session
// per device.
type FileKV struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFileKV loads (or initializes) the store under dir.
func OpenFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	kv := &FileKV{
		path: filepath.Join(dir, fileStoreName),
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(kv.path)
	if os.IsNotExist(err) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	// A corrupt store file is recoverable: start over with an empty map,
	// the reset path repopulates it.
	if err := json.Unmarshal(raw, &kv.data); err != nil {
		kv.data = make(map[string]string)
	}
	return kv, nil
}

func (kv *FileKV) Get(_ context.Context, key string) (string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.data[key], nil
}

func (kv *FileKV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return kv.flushLocked()
}

func (kv *FileKV) flushLocked() error {
	raw, err := json.Marshal(kv.data)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp := kv.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, kv.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
