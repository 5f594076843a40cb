package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"silant-servicebook-web/internal/model"
)

type mockSource struct {
	FailureNodesFunc    func(ctx context.Context) (model.List[model.CatalogEntry], error)
	RecoveryMethodsFunc func(ctx context.Context) (model.List[model.CatalogEntry], error)
	ServiceTypesFunc    func(ctx context.Context) (model.List[model.CatalogEntry], error)
}

func (m *mockSource) FailureNodes(ctx context.Context) (model.List[model.CatalogEntry], error) {
	return m.FailureNodesFunc(ctx)
}

func (m *mockSource) RecoveryMethods(ctx context.Context) (model.List[model.CatalogEntry], error) {
	return m.RecoveryMethodsFunc(ctx)
}

func (m *mockSource) ServiceTypes(ctx context.Context) (model.List[model.CatalogEntry], error) {
	return m.ServiceTypesFunc(ctx)
}

func entries(names ...string) model.List[model.CatalogEntry] {
	list := make(model.List[model.CatalogEntry], len(names))
	for i, n := range names {
		list[i] = model.CatalogEntry{ID: int64(i + 1), Name: n}
	}
	return list
}

func TestLoader_ServiceTypesFetchedOncePerCycle(t *testing.T) {
	var calls int32
	src := &mockSource{
		ServiceTypesFunc: func(ctx context.Context) (model.List[model.CatalogEntry], error) {
			atomic.AddInt32(&calls, 1)
			return entries("ТО-1", "ТО-2"), nil
		},
	}

	l := NewLoader(src)
	for i := 0; i < 3; i++ {
		types, err := l.ServiceTypes(context.Background())
		require.NoError(t, err)
		assert.Len(t, types, 2)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err := NewLoader(src).ServiceTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoader_ServiceTypesErrorIsNotMemoised(t *testing.T) {
	fail := true
	src := &mockSource{
		ServiceTypesFunc: func(ctx context.Context) (model.List[model.CatalogEntry], error) {
			if fail {
				return nil, errors.New("down")
			}
			return entries("ТО-1"), nil
		},
	}

	l := NewLoader(src)
	_, err := l.ServiceTypes(context.Background())
	assert.Error(t, err)

	fail = false
	types, err := l.ServiceTypes(context.Background())
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestLoader_ComplaintCatalogs(t *testing.T) {
	src := &mockSource{
		FailureNodesFunc: func(ctx context.Context) (model.List[model.CatalogEntry], error) {
			return entries("Двигатель", "Трансмиссия"), nil
		},
		RecoveryMethodsFunc: func(ctx context.Context) (model.List[model.CatalogEntry], error) {
			return entries("Замена узла"), nil
		},
	}

	nodes, methods, err := NewLoader(src).ComplaintCatalogs(context.Background())
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
	assert.Len(t, methods, 1)
}

func TestLoader_ComplaintCatalogsAllOrNothing(t *testing.T) {
	src := &mockSource{
		FailureNodesFunc: func(ctx context.Context) (model.List[model.CatalogEntry], error) {
			return entries("Двигатель"), nil
		},
		RecoveryMethodsFunc: func(ctx context.Context) (model.List[model.CatalogEntry], error) {
			return nil, errors.New("down")
		},
	}

	nodes, methods, err := NewLoader(src).ComplaintCatalogs(context.Background())
	assert.Error(t, err)
	assert.Nil(t, nodes)
	assert.Nil(t, methods)
}

func TestDefault(t *testing.T) {
	list := entries("ТО-1", "ТО-2")

	assert.Equal(t, "ТО-1", Default(list, ""))
	assert.Equal(t, "ТО-2", Default(list, "ТО-2"))
	assert.Equal(t, "ТО-1", Default(list, "ТО-3"))
	assert.Equal(t, "", Default(nil, ""))
	assert.Equal(t, "", Default(nil, "ТО-2"))
}
