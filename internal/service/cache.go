// internal/service/cache.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/dangerclosesec/crmboard/internal/cache"
	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/google/uuid"
)

// CacheService provides caching functionality with type safety and error handling
type CacheService struct {
	cache *cache.InMemoryCache
}

// CacheConfig holds configuration for the cache service
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// NewCacheService creates a new cache service
func NewCacheService(config CacheConfig) *CacheService {
	return &CacheService{
		cache: cache.NewInMemoryCache(config.Size, config.TTL),
	}
}

func pipelinesKey(orgID uuid.UUID) string {
	return "pipelines:" + orgID.String()
}

func boardKey(orgID, pipelineID uuid.UUID) string {
	return "board:" + orgID.String() + ":" + pipelineID.String()
}

// Set stores a value in the cache with type safety
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return domain.ErrInvalidInput
	}
	s.cache.Set(ctx, key, value)
	return nil
}

// Get retrieves a value from the cache into result
func (s *CacheService) Get(ctx context.Context, key string, result interface{}) error {
	if key == "" {
		return domain.ErrInvalidInput
	}

	value, found := s.cache.Get(ctx, key)
	if !found {
		return domain.ErrCacheMiss
	}

	if err := assignValue(value, result); err != nil {
		return fmt.Errorf("assigning cached value: %w", err)
	}
	return nil
}

// GetOrSet retrieves a value from cache or sets it if not found
func (s *CacheService) GetOrSet(ctx context.Context, key string, result interface{}, fetchFunc func() (interface{}, error)) error {
	if s == nil {
		value, err := fetchFunc()
		if err != nil {
			return err
		}
		return assignValue(value, result)
	}

	err := s.Get(ctx, key, result)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		return fmt.Errorf("getting from cache: %w", err)
	}

	value, err := fetchFunc()
	if err != nil {
		return err
	}

	if err := s.Set(ctx, key, value); err != nil {
		return fmt.Errorf("storing in cache: %w", err)
	}

	if err := assignValue(value, result); err != nil {
		return fmt.Errorf("assigning fetched value: %w", err)
	}
	return nil
}

// Delete removes a value from the cache
func (s *CacheService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidInput
	}
	s.cache.Delete(ctx, key)
	return nil
}

// InvalidateBoard drops the cached reads of a pipeline and the org's pipeline list.
func (s *CacheService) InvalidateBoard(ctx context.Context, orgID, pipelineID uuid.UUID) {
	if s == nil {
		return
	}
	s.cache.Delete(ctx, pipelinesKey(orgID))
	if pipelineID != uuid.Nil {
		s.cache.Delete(ctx, boardKey(orgID, pipelineID))
	}
}

// InvalidateOrganization drops every cached read of an organization.
func (s *CacheService) InvalidateOrganization(ctx context.Context, orgID uuid.UUID) {
	if s == nil {
		return
	}
	s.cache.Delete(ctx, pipelinesKey(orgID))
	s.cache.DeletePrefix(ctx, "board:"+orgID.String()+":")
}

// Close empties the cache
func (s *CacheService) Close() {
	s.cache.Purge()
}

// assignValue copies src into the pointer dst through JSON, so callers never
// share slices or nested structs with the cached value.
func assignValue(src interface{}, dst interface{}) error {
	if dst == nil || reflect.ValueOf(dst).Kind() != reflect.Pointer || reflect.ValueOf(dst).IsNil() {
		return fmt.Errorf("destination must be a non-nil pointer, got %T", dst)
	}

	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshaling value: %w", err)
	}
	return nil
}
