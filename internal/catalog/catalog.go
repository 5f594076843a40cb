package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"silant-servicebook-web/internal/model"
)

// Source fetches the reference lists from the API.
type Source interface {
	FailureNodes(ctx context.Context) (model.List[model.CatalogEntry], error)
	RecoveryMethods(ctx context.Context) (model.List[model.CatalogEntry], error)
	ServiceTypes(ctx context.Context) (model.List[model.CatalogEntry], error)
}

// Loader memoises catalogs for one form open cycle. A fresh Loader fetches again.
type Loader struct {
	src Source

	mu              sync.Mutex
	serviceTypes    []model.CatalogEntry
	failureNodes    []model.CatalogEntry
	recoveryMethods []model.CatalogEntry
	haveService     bool
	haveComplaint   bool
}

// NewLoader creates a loader backed by src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// ServiceTypes returns the service-type catalog, fetching it on first use.
func (l *Loader) ServiceTypes(ctx context.Context) ([]model.CatalogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.haveService {
		return l.serviceTypes, nil
	}
	types, err := l.src.ServiceTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load service types: %w", err)
	}
	l.serviceTypes, l.haveService = types, true
	return l.serviceTypes, nil
}

// ComplaintCatalogs returns the failure-node and recovery-method catalogs, fetched in parallel
// on first use. Either both are returned or neither.
func (l *Loader) ComplaintCatalogs(ctx context.Context) (nodes, methods []model.CatalogEntry, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.haveComplaint {
		return l.failureNodes, l.recoveryMethods, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := l.src.FailureNodes(gctx)
		if err != nil {
			return fmt.Errorf("failed to load failure nodes: %w", err)
		}
		nodes = list
		return nil
	})
	g.Go(func() error {
		list, err := l.src.RecoveryMethods(gctx)
		if err != nil {
			return fmt.Errorf("failed to load recovery methods: %w", err)
		}
		methods = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	l.failureNodes, l.recoveryMethods, l.haveComplaint = nodes, methods, true
	return nodes, methods, nil
}

// Default picks the value a select should show: current when it names an entry,
// otherwise the first entry's name, or "" for an empty catalog.
func Default(entries []model.CatalogEntry, current string) string {
	for _, e := range entries {
		if e.Name == current && current != "" {
			return current
		}
	}
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Name
}
