package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/skylight/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketFolders = []byte("folders")

// FolderStore implements domain.FolderStore using BoltDB.
// Listings older than the TTL are treated as missing.
type FolderStore struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex // Protects memory cache
	cache map[string][]byte
}

// NewFolderStore opens (or creates) the cache database for one drive.
// An empty baseCacheDir gives a memory-only store.
func NewFolderStore(baseCacheDir, driveKey string, ttl time.Duration) (*FolderStore, error) {
	s := &FolderStore{
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string][]byte),
	}
	if baseCacheDir == "" {
		return s, nil
	}

	dir := baseCacheDir
	if driveKey != "" {
		dir = filepath.Join(baseCacheDir, hashDriveKey(driveKey))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "skylight.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFolders)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

func hashDriveKey(key string) string {
	normalized := strings.TrimRight(strings.ToLower(key), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *FolderStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetFolder returns a fresh cached listing
func (s *FolderStore) GetFolder(folderID string) (*domain.Folder, bool) {
	data, ok := s.get(folderID)
	if !ok {
		return nil, false
	}
	var folder domain.Folder
	if err := json.Unmarshal(data, &folder); err != nil {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(folder.FetchedAt) > s.ttl {
		return nil, false
	}
	return &folder, true
}

// SaveFolder stores a listing under its folder id
func (s *FolderStore) SaveFolder(folder *domain.Folder) error {
	if folder == nil || folder.ID == "" {
		return fmt.Errorf("folder id is required")
	}
	data, err := json.Marshal(folder)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[folder.ID] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFolders).Put([]byte(folder.ID), data)
	})
}

// Invalidate drops one folder listing
func (s *FolderStore) Invalidate(folderID string) {
	s.mu.Lock()
	delete(s.cache, folderID)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketFolders); b != nil {
			return b.Delete([]byte(folderID))
		}
		return nil
	})
}

// InvalidateAll wipes the entire cache
func (s *FolderStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketFolders); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketFolders)
		return err
	})
}

// get reads memory first, then BoltDB, promoting disk hits
func (s *FolderStore) get(key string) ([]byte, bool) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFolders)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data, true
}
