package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/task-manager-api/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"
)

const listCacheKey = "categories:list"

// Cache is the subset of the Redis store the catalog needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// Service implements category management. The category listing is served
// cache-aside when a cache is configured.
type Service struct {
	repo   *Repository
	cache  Cache
	group  singleflight.Group
	logger types.Logger

	// mu guards generation. A load only populates the cache when no
	// invalidation happened since it read the database.
	mu         sync.Mutex
	generation uint64
}

// NewService creates a Service. cache may be nil.
func NewService(repo *Repository, cache Cache, logger types.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// List returns every category with its tasks, ordered by label. The second
// return value reports a cache hit.
func (s *Service) List(ctx context.Context) ([]task.CategoryView, bool, error) {
	if s.cache != nil {
		var cached []task.CategoryView
		found, err := s.cache.Get(ctx, listCacheKey, &cached)
		if err != nil {
			s.logger.Warn("Category cache read failed", "error", err)
		}
		if found {
			return cached, true, nil
		}
	}

	val, err, _ := s.group.Do(listCacheKey, func() (any, error) {
		// Shared by every waiting caller, so it outlives the first one.
		loadCtx := context.WithoutCancel(ctx)

		generation := s.currentGeneration()
		categories, err := s.repo.List(loadCtx)
		if err != nil {
			return nil, err
		}
		views := make([]task.CategoryView, 0, len(categories))
		for i := range categories {
			views = append(views, categories[i].ToView())
		}
		s.store(loadCtx, generation, views)
		return views, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]task.CategoryView), false, nil
}

// Get returns a category with its tasks.
func (s *Service) Get(ctx context.Context, id uint) (*task.CategoryView, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := category.ToView()
	return &view, nil
}

// ListTasks returns the tasks of category id. An empty category is reported
// as ErrNoCategoryTasks.
func (s *Service) ListTasks(ctx context.Context, id uint) ([]task.Summary, error) {
	tasks, err := s.repo.TasksOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoCategoryTasks, id)
	}
	return task.Summaries(tasks), nil
}

// CreateForTask creates a category and moves task taskID into it.
func (s *Service) CreateForTask(ctx context.Context, taskID uint, label string) (*task.Detail, error) {
	label, err := task.NormalizeLabel(label)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.CreateForTask(ctx, taskID, label)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	detail := t.ToDetail()
	return &detail, nil
}

// Relabel renames category id.
func (s *Service) Relabel(ctx context.Context, id uint, label string) (*task.CategoryView, error) {
	label, err := task.NormalizeLabel(label)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.Relabel(ctx, id, label)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	view := category.ToView()
	return &view, nil
}

// Delete removes category id and everything filed under it. It returns the
// deleted label.
func (s *Service) Delete(ctx context.Context, id uint) (string, error) {
	category, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return category.Label, nil
}

// ResolveLabel finds the category id for label, ignoring case and
// surrounding whitespace.
func (s *Service) ResolveLabel(ctx context.Context, label string) (uint, error) {
	category, err := s.repo.FindByLabel(ctx, label)
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}

// Invalidate drops the cached category listing. Loads already in flight
// are detached so they neither populate the cache nor serve later callers.
func (s *Service) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.group.Forget(listCacheKey)
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		return fmt.Errorf("failed to drop category listing: %w", err)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.Invalidate(ctx); err != nil {
		s.logger.Warn("Category cache invalidation failed", "error", err)
	}
}

func (s *Service) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// store caches views unless the listing was invalidated after generation
// was read.
func (s *Service) store(ctx context.Context, generation uint64, views []task.CategoryView) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		s.logger.Debug("Category listing changed during load, not caching")
		return
	}
	if err := s.cache.Set(ctx, listCacheKey, views); err != nil {
		s.logger.Warn("Category cache write failed", "error", err)
	}
}
