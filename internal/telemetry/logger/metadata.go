package logger

import (
	"maps"
	"sort"
	"sync"
)

// Well-known metadata keys.
const (
	// FlowKey names the flow the caller is in. It selects the redaction scope.
	FlowKey = "Flow"
	// StateKey names the state the flow is moving to. It selects the
	// redaction scope together with FlowKey.
	StateKey = "NextState"
	// PrivateKey suppresses an entry when its value is truthy.
	PrivateKey = "private"
)

// metaData is a concurrency-safe key/value bag.
type metaData struct {
	mu     sync.RWMutex
	values map[string]any
}

func newMetaData(initial map[string]any) *metaData {
	m := &metaData{values: make(map[string]any, len(initial))}
	maps.Copy(m.values, initial)
	return m
}

func (m *metaData) merge(data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.values, data)
}

func (m *metaData) set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *metaData) remove(keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
}

// snapshot returns a copy safe to modify.
func (m *metaData) snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}

// AddMetaDataByObject merges data into the logger's metadata.
func (l *Logger) AddMetaDataByObject(data map[string]any) {
	l.meta.merge(data)
}

// AddMetaDataByKey sets a single metadata key.
func (l *Logger) AddMetaDataByKey(key string, value any) {
	l.meta.set(key, value)
}

// RemoveMetaDataByKey deletes a metadata key.
func (l *Logger) RemoveMetaDataByKey(key string) {
	l.meta.remove(key)
}

// RemoveMetaDataByObject deletes every key present in data. Values are
// ignored.
func (l *Logger) RemoveMetaDataByObject(data map[string]any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	l.meta.remove(keys...)
}

// MetaData returns a copy of the logger's metadata.
func (l *Logger) MetaData() map[string]any {
	out := l.meta.snapshot()
	if out == nil {
		out = make(map[string]any)
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
