package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/tmsim/pkg/adapters/file"
	"github.com/aretw0/tmsim/pkg/domain"
)

// Loader adapts a Loam repository of machine documents to ports.MachineLoader.
//
// A machine document is Markdown with frontmatter. The instruction listing is
// either the `rules` key or the first fenced code block of the body (the whole
// body when there is no fence), so a machine library doubles as its own
// documentation.
type Loader struct {
	Repo *loam.TypedRepository[MachineMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[MachineMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("open machine library: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open machine library: %s is not a directory", absPath)
	}

	// Strict mode keeps numeric types consistent across Markdown and JSON
	// documents; read-only because machines are never written back.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[MachineMetadata](repo)), nil
}

// GetMachine retrieves a machine document and decodes it.
func (l *Loader) GetMachine(ctx context.Context, id string) (*domain.Machine, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	spec, err := file.DecodeSpec(doc.Data.raw())
	if err != nil {
		return nil, fmt.Errorf("machine %s: %w", id, err)
	}
	if spec.Rules == nil {
		if listing := extractListing(doc.Content); listing != "" {
			spec.Rules = listing
		}
	}

	fallback := trimExtension(doc.ID)
	if spec.ID != "" {
		spec.ID = trimExtension(spec.ID)
	}
	return spec.Machine(fallback)
}

// ListMachines lists all machine documents in the repository.
func (l *Loader) ListMachines(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func isNotFound(err error) bool {
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no such file")
}

// extractListing returns the first fenced code block of body, or the whole
// body when it has none.
func extractListing(body string) string {
	lines := strings.Split(body, "\n")
	var block []string
	inside := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			if inside {
				return strings.Join(block, "\n")
			}
			inside = true
			continue
		}
		if inside {
			block = append(block, line)
		}
	}
	if inside {
		// Unterminated fence: take what was collected.
		return strings.Join(block, "\n")
	}
	return strings.TrimSpace(body)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
