package loam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/mpoindexter/spring-webflow/internal/dto"
	"github.com/mpoindexter/spring-webflow/pkg/ports"
)

// Loader adapts a Loam repository to the ports.FlowLoader interface.
// Each document's front matter (or the whole file for YAML/JSON documents)
// holds one flow definition.
type Loader struct {
	Repo *loam.TypedRepository[dto.Flow]
}

var (
	_ ports.FlowLoader = (*Loader)(nil)
	_ ports.Watchable  = (*Loader)(nil)
)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[dto.Flow]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a strict, read-only Loam repository rooted at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve flow directory %s: %w", dir, err)
	}
	repo, err := loam.Init(absPath, loam.WithStrict(true), loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open flow repository %s: %w", absPath, err)
	}
	return New(loam.NewTypedRepository[dto.Flow](repo)), nil
}

// GetFlow retrieves a flow document and re-encodes its metadata as JSON,
// which the compiler accepts as YAML.
func (l *Loader) GetFlow(ctx context.Context, id string) ([]byte, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ports.ErrFlowNotFound, id)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	flow := doc.Data
	rawID := flow.ID
	if rawID == "" {
		rawID = doc.ID
	}
	flow.ID = trimExtension(rawID)

	bytes, err := json.Marshal(flow)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal flow %s: %w", id, err)
	}
	return bytes, nil
}

// ListFlows lists all flows in the repository.
func (l *Loader) ListFlows(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
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
	slices.Sort(ids)
	return ids, nil
}

// isNotFound matches Loam's not-found errors, which are not always wrapped
// around os.ErrNotExist.
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no such file")
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
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
