package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Extensions recognised as machine definitions, in lookup order.
var machineExts = []string{".yaml", ".yml", ".tm"}

// TapesExt is the extension of the optional tapes file next to a .tm listing.
const TapesExt = ".tapes"

// Loader implements ports.MachineLoader over a directory tree.
// A machine id is its path relative to the root, without extension and with
// forward slashes.
type Loader struct {
	Root string
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{Root: dir}
}

// GetMachine loads the machine with the given id.
func (l *Loader) GetMachine(ctx context.Context, id string) (*domain.Machine, error) {
	if id == "" || strings.Contains(id, "..") {
		return nil, fmt.Errorf("%w: %q", domain.ErrMachineNotFound, id)
	}
	base := filepath.Join(l.Root, filepath.FromSlash(id))

	for _, ext := range machineExts {
		path := base + ext
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if ext == ".tm" {
			tapes := base + TapesExt
			if _, err := os.Stat(tapes); err != nil {
				tapes = ""
			}
			m, err := LoadPair(path, tapes)
			if err != nil {
				return nil, err
			}
			m.ID = id
			return m, nil
		}
		return LoadYAML(path, id)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
}

// ListMachines walks the root directory and returns every machine id, sorted.
// Two files resolving to the same id are reported as an error.
func (l *Loader) ListMachines(ctx context.Context) ([]string, error) {
	seen := make(map[string]string)
	var ids []string

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		if !isMachineExt(ext) {
			return nil
		}

		rel, err := filepath.Rel(l.Root, path)
		if err != nil {
			return err
		}
		id := filepath.ToSlash(strings.TrimSuffix(rel, ext))
		if existing, ok := seen[id]; ok {
			return fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, rel)
		}
		seen[id] = rel
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

func isMachineExt(ext string) bool {
	for _, e := range machineExts {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadYAML reads a machine definition file. id is used when the file does
// not name itself.
func LoadYAML(path, id string) (*domain.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}
	return ParseYAML(data, id)
}

// ParseYAML decodes a machine definition document.
func ParseYAML(data []byte, id string) (*domain.Machine, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse machine %s: %w", id, err)
	}
	return spec.Machine(id)
}

// LoadPair reads an instruction listing and, when tapesPath is not empty,
// a tapes file with one input per line. The machine id is the listing's
// file name without extension.
func LoadPair(instrPath, tapesPath string) (*domain.Machine, error) {
	instr, err := os.Open(instrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open instructions: %w", err)
	}
	defer instr.Close()

	parser := compiler.NewParser()
	rules, err := parser.ParseRules(instr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", instrPath, err)
	}

	m := &domain.Machine{
		ID:    strings.TrimSuffix(filepath.Base(instrPath), filepath.Ext(instrPath)),
		Rules: rules,
	}

	if tapesPath == "" {
		return m, nil
	}
	tapes, err := os.Open(tapesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open tapes: %w", err)
	}
	defer tapes.Close()

	m.Tapes, err = parser.ParseTapes(tapes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tapesPath, err)
	}
	return m, nil
}
