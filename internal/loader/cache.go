package loader

import (
	"context"
	"fmt"

	"github.com/Veraticus/cardlens/internal/common"
	"github.com/Veraticus/cardlens/internal/model"
)

// DataStore is the slice of the storage layer the cache source needs.
type DataStore interface {
	LoadData(ctx context.Context) (*model.RawData, error)
}

// CacheSource reads previously imported datasets from the local cache.
type CacheSource struct {
	store DataStore
}

// NewCacheSource creates a source backed by the dataset cache.
func NewCacheSource(store DataStore) *CacheSource {
	return &CacheSource{store: store}
}

// Name identifies the source in logs and errors.
func (s *CacheSource) Name() string {
	return "cache"
}

// Load reads the cached datasets. An empty cache is an error: the user needs
// to run an import first, and an empty analysis would hide that.
func (s *CacheSource) Load(ctx context.Context) (*model.RawData, error) {
	data, err := s.store.LoadData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached datasets: %w", err)
	}
	if len(data.Users) == 0 && len(data.CreditCards) == 0 && len(data.Transactions) == 0 {
		return nil, common.NewUserError("dataset cache is empty; run 'cardlens import' first", common.ErrNotFound)
	}
	return data, nil
}
