package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// TaskIndex maps Taskwarrior UUIDs to remote task IDs so the syncer can
// find a task's remote counterpart without searching the service.
type TaskIndex struct {
	Mappings map[string]int64 `json:"mappings"`
	Path     string           `json:"-"`
	mu       sync.RWMutex
	dirty    bool
}

func NewTaskIndex() (*TaskIndex, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "twdoist", "tasks.json")

	idx := &TaskIndex{
		Mappings: make(map[string]int64),
		Path:     path,
	}

	if _, err := os.Stat(path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *TaskIndex) Load() error {
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&idx.Mappings)
}

func (idx *TaskIndex) Save() error {
	idx.mu.RLock()
	if !idx.dirty {
		idx.mu.RUnlock()
		return nil
	}
	idx.mu.RUnlock()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	dir := filepath.Dir(idx.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *TaskIndex) Get(uuid string) (int64, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	id, ok := idx.Mappings[uuid]
	return id, ok
}

func (idx *TaskIndex) Set(uuid string, taskID int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.Mappings[uuid] != taskID {
		idx.Mappings[uuid] = taskID
		idx.dirty = true
	}
}

func (idx *TaskIndex) Remove(uuid string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.Mappings[uuid]; exists {
		delete(idx.Mappings, uuid)
		idx.dirty = true
	}
}
