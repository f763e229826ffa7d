package colors

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"
)

// The service's palette is the contiguous ID range 30 (berry red) through
// 49 (taupe). 48 is grey, kept as the fallback for unnamed projects.
const (
	paletteFirst = 30
	paletteLast  = 49
	defaultColor = 48
)

type ProjectState struct {
	ColorID      int       `json:"color_id"`
	LastModified time.Time `json:"last_modified"`
}

type ColorCache struct {
	Path     string
	Projects map[string]*ProjectState `json:"projects"`
	dirty    bool
}

const (
	xdgAppName = "twdoist"
	cacheFile  = "project_colors.json"
)

func NewColorCache() (*ColorCache, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", xdgAppName, cacheFile)

	cache := &ColorCache{
		Path:     path,
		Projects: make(map[string]*ProjectState),
	}

	if _, err := os.Stat(path); err == nil {
		if err := cache.Load(); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

func (c *ColorCache) Load() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&c.Projects)
}

func (c *ColorCache) Save() error {
	if !c.dirty {
		return nil
	}
	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Printf("Error creating color cache directory: %v", err)
		return err
	}

	f, err := os.Create(c.Path)
	if err != nil {
		log.Printf("Error creating color cache file: %v", err)
		return err
	}
	defer f.Close()
	err = json.NewEncoder(f).Encode(c.Projects)
	if err == nil {
		c.dirty = false
	}
	return err
}

// GetColorID returns the palette color for a project, assigning one on
// first sight.
func (c *ColorCache) GetColorID(project string) int {
	if project == "" {
		return defaultColor
	}

	state, exists := c.Projects[project]
	if exists {
		// Touch the LRU stamp; the caller saves when convenient.
		state.LastModified = time.Now()
		c.dirty = true
		return state.ColorID
	}

	return c.assignColor(project)
}

func (c *ColorCache) assignColor(project string) int {
	used := make(map[int]bool)
	for _, s := range c.Projects {
		used[s.ColorID] = true
	}

	// Try to find an unused slot
	for id := paletteFirst; id <= paletteLast; id++ {
		if !used[id] {
			c.Projects[project] = &ProjectState{
				ColorID:      id,
				LastModified: time.Now(),
			}
			c.dirty = true
			return id
		}
	}

	// Palette exhausted: evict the least recently used project and
	// recycle its color.
	var oldestProject string
	var oldestTime time.Time
	first := true

	for p, s := range c.Projects {
		if first || s.LastModified.Before(oldestTime) {
			oldestTime = s.LastModified
			oldestProject = p
			first = false
		}
	}

	if oldestProject != "" {
		recycledColor := c.Projects[oldestProject].ColorID
		delete(c.Projects, oldestProject)

		c.Projects[project] = &ProjectState{
			ColorID:      recycledColor,
			LastModified: time.Now(),
		}
		c.dirty = true
		return recycledColor
	}

	return defaultColor
}
