// Package jsonfile stores player profiles as one JSON file per player
// under a data directory. This is the zero-dependency local backend;
// production deployments use the postgres store.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/novatale/armory/internal/domain"
)

const (
	fileSuffix      = "_data.json"
	filePermissions = 0644
	dirPermissions  = 0755
)

// ProfileRepository implements repository.Profile over flat JSON files.
// A single RWMutex guards directory scans and file writes; per-player
// operation ordering is the service layer's concern.
type ProfileRepository struct {
	dir string
	mu  sync.RWMutex
}

// NewProfileRepository creates the data directory if needed and returns
// a file-backed profile repository.
func NewProfileRepository(dir string) (*ProfileRepository, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &ProfileRepository{dir: dir}, nil
}

func (r *ProfileRepository) path(playerID string) string {
	return filepath.Join(r.dir, playerID+fileSuffix)
}

// checkFileID rejects player IDs that do not map to a plain file name
// inside the data directory. The service validates IDs on registration;
// this keeps a crafted ID from ever escaping the directory.
func checkFileID(playerID string) error {
	if playerID == "" || playerID == "." || playerID == ".." ||
		strings.ContainsAny(playerID, `/\`) || playerID != filepath.Base(playerID) {
		return fmt.Errorf("%w: player id %q is not a valid save file name", domain.ErrInvalidInput, playerID)
	}
	return nil
}

// Get returns the stored profile for playerID.
func (r *ProfileRepository) Get(ctx context.Context, playerID string) (*domain.Profile, error) {
	if err := checkFileID(playerID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path(playerID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, playerID)
		}
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile file for %s: %w", playerID, err)
	}

	// Older save files may omit the ID or carry nil lists
	if profile.PlayerID == "" {
		profile.PlayerID = playerID
	}
	profile.EnsureLists()

	return &profile, nil
}

// Save writes the profile to <playerId>_data.json atomically via a
// temp file rename.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: nil profile", domain.ErrInvalidInput)
	}
	if err := checkFileID(profile.PlayerID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, profile.PlayerID+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpName, r.path(profile.PlayerID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace profile file: %w", err)
	}

	return nil
}

// Exists reports whether a save file exists for playerID.
func (r *ProfileRepository) Exists(ctx context.Context, playerID string) (bool, error) {
	if err := checkFileID(playerID); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, err := os.Stat(r.path(playerID))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat profile file: %w", err)
}

// Delete removes the save file for playerID.
func (r *ProfileRepository) Delete(ctx context.Context, playerID string) error {
	if err := checkFileID(playerID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.path(playerID))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, playerID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete profile file: %w", err)
	}
	return nil
}

// CheckHealth verifies the data directory is still present and readable.
func (r *ProfileRepository) CheckHealth(ctx context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", r.dir)
	}
	return nil
}

// ListIDs scans the data directory for save files and returns their
// player IDs.
func (r *ProfileRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), fileSuffix))
	}
	return ids, nil
}
