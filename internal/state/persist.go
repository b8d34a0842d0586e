package state

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/focus-arcade/internal/config"
)

// KV is a blob store with atomic replacement per key.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// MemoryKV is an in-process KV, used when no database is available.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put replaces the value stored under key.
func (m *MemoryKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// ReadJSON decodes the value under key. Missing keys, backend errors and
// corrupt data all yield fallback; failures are logged, never returned.
func ReadJSON[T any](kv KV, key string, fallback T) T {
	return readJSON(log.Default(), kv, key, fallback)
}

// WriteJSON encodes v under key. Failures are logged and swallowed.
func WriteJSON(kv KV, key string, v any) {
	writeJSON(log.Default(), kv, key, v)
}

func readJSON[T any](logger *log.Logger, kv KV, key string, fallback T) T {
	if kv == nil {
		return fallback
	}
	data, ok, err := kv.Get(key)
	if err != nil {
		logger.Warn("readJSON failed", "key", key, "err", err)
		return fallback
	}
	if !ok || len(data) == 0 {
		return fallback
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn("readJSON failed", "key", key, "err", err)
		return fallback
	}
	return v
}

func writeJSON(logger *log.Logger, kv KV, key string, v any) {
	if kv == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("writeJSON failed", "key", key, "err", err)
		return
	}
	if err := kv.Put(key, data); err != nil {
		logger.Warn("writeJSON failed", "key", key, "err", err)
	}
}

// Persister binds a KV backend to the two logical records. A namespace
// (e.g. an SSH user) keeps several players apart in one backend.
type Persister struct {
	kv        KV
	namespace string
	logger    *log.Logger
}

// NewPersister creates a persister over kv. Failures go to the default
// logger until WithLogger is called.
func NewPersister(kv KV, namespace string) *Persister {
	return &Persister{kv: kv, namespace: namespace}
}

// WithLogger sets the logger for storage warnings and returns p.
func (p *Persister) WithLogger(logger *log.Logger) *Persister {
	p.logger = logger
	return p
}

func (p *Persister) logOrDefault() *log.Logger {
	if p.logger == nil {
		return log.Default()
	}
	return p.logger
}

func (p *Persister) key(k string) string {
	if p.namespace == "" {
		return k
	}
	return p.namespace + ":" + k
}

// LoadScores returns the stored best scores, with every game present.
func (p *Persister) LoadScores() BestScores {
	best := DefaultBestScores()
	if p == nil {
		return best
	}
	stored := readJSON[map[config.GameID]int](p.logOrDefault(), p.kv, p.key(config.KeyScores), nil)
	for id, score := range stored {
		if score > 0 {
			best[id] = score
		}
	}
	return best
}

// SaveScores writes the best scores record.
func (p *Persister) SaveScores(best BestScores) {
	if p == nil {
		return
	}
	writeJSON(p.logOrDefault(), p.kv, p.key(config.KeyScores), best)
}

// LoadSensitivity returns the stored sensitivity, hydrated.
func (p *Persister) LoadSensitivity() Sensitivity {
	if p == nil {
		return DefaultSensitivity()
	}
	return Hydrate(readJSON[*Sensitivity](p.logOrDefault(), p.kv, p.key(config.KeySensitivity), nil))
}

// SaveSensitivity writes the sensitivity record.
func (p *Persister) SaveSensitivity(s Sensitivity) {
	if p == nil {
		return
	}
	writeJSON(p.logOrDefault(), p.kv, p.key(config.KeySensitivity), s)
}
