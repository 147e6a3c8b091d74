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

	"github.com/sudatra/aora/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketHistory = []byte("history")
)

const (
	keyCredential   = "credential"
	keyQueries      = "queries"
	maxHistoryItems = 50
)

// Store implements domain.SessionStore and domain.HistoryStore using BoltDB.
// One database file is kept per endpoint and project.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every value read or written
	cache map[string][]byte
}

var (
	_ domain.SessionStore = (*Store)(nil)
	_ domain.HistoryStore = (*Store)(nil)
)

// New opens the store under baseDir. An empty baseDir gives a memory-only store.
func New(baseDir, endpoint, projectID string) (*Store, error) {
	if baseDir == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	dir := filepath.Join(baseDir, hashProject(endpoint, projectID))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "aora.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketHistory} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func hashProject(endpoint, projectID string) string {
	normalized := strings.TrimRight(strings.ToLower(endpoint), "/") + "|" + projectID
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
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
		return false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Session ===

// LoadSession returns the persisted session credential
func (s *Store) LoadSession() (string, bool) {
	var credential string
	ok := s.get(bucketSession, keyCredential, &credential)
	return credential, ok && credential != ""
}

// SaveSession persists the session credential
func (s *Store) SaveSession(credential string) error {
	return s.set(bucketSession, keyCredential, credential)
}

// ClearSession removes the persisted session credential
func (s *Store) ClearSession() error {
	return s.delete(bucketSession, keyCredential)
}

// === Search history ===

// RecentQueries returns up to limit queries, newest first. limit <= 0 returns all.
func (s *Store) RecentQueries(limit int) []string {
	var queries []string
	s.get(bucketHistory, keyQueries, &queries)
	if limit > 0 && len(queries) > limit {
		queries = queries[:limit]
	}
	return queries
}

// AddQuery records query as the newest entry, dropping an older duplicate
func (s *Store) AddQuery(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	existing := s.RecentQueries(0)
	queries := make([]string, 0, len(existing)+1)
	queries = append(queries, query)
	for _, q := range existing {
		if !strings.EqualFold(q, query) {
			queries = append(queries, q)
		}
	}
	if len(queries) > maxHistoryItems {
		queries = queries[:maxHistoryItems]
	}
	return s.set(bucketHistory, keyQueries, queries)
}
