package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/younwookim/hidmacro/internal/domain/macro"
)

var (
	ErrInvalidTick = errors.New("tickMillis must be positive")
	ErrEchoes      = errors.New("echoes must not be negative")
)

// Loader loads device settings and macros using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadDevice loads device.json on top of DefaultDevice
func (l *Loader) LoadDevice() (*DeviceConfig, error) {
	data, err := fs.ReadFile(l.fsys, "device.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read device.json: %w", err)
	}

	cfg := DefaultDevice()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse device.json: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid device.json: %w", err)
	}

	return &cfg, nil
}

// Validate checks device settings
func (c *DeviceConfig) Validate() error {
	if c.TickMillis <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTick, c.TickMillis)
	}
	if c.Echoes < 0 {
		return fmt.Errorf("%w: %d", ErrEchoes, c.Echoes)
	}
	return nil
}

// LoadMacro loads and validates macros/<name>.yaml
func (l *Loader) LoadMacro(name string) (*macro.Timeline, error) {
	p := path.Join("macros", name+".yaml")
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read macro %s: %w", name, err)
	}

	tl, err := ParseMacro(data, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load macro %s: %w", name, err)
	}

	return tl, nil
}

// ListMacros returns the names of every macro under macros/
func (l *Loader) ListMacros() ([]string, error) {
	matches, err := fs.Glob(l.fsys, "macros/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list macros: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := path.Base(m)
		names = append(names, base[:len(base)-len(".yaml")])
	}
	return names, nil
}
