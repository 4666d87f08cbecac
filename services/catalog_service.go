package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"urbanserv/entity"
	"urbanserv/repository"

	"gorm.io/gorm"
)

// ResolvedItem is the catalog's current view of an item, used to price cart
// contents at checkout time.
type ResolvedItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Photo       string  `json:"photo"`
	UnitPrice   float64 `json:"unitPrice"`
}

type cacheEntry struct {
	item    *ResolvedItem
	expires time.Time
}

// CatalogService resolves (itemType, itemID) to live catalog data behind a
// per-process TTL cache with an explicit invalidation hook.
type CatalogService struct {
	Repo *repository.CatalogRepository
	ttl  time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewCatalogService(repo *repository.CatalogRepository, ttl time.Duration) *CatalogService {
	return &CatalogService{Repo: repo, ttl: ttl, cache: make(map[string]cacheEntry)}
}

// Resolve returns ErrNotFound when the item is missing or inactive.
func (s *CatalogService) Resolve(itemType string, itemID uint) (*ResolvedItem, error) {
	key := fmt.Sprintf("%s:%d", itemType, itemID)

	if s.ttl > 0 {
		s.mu.Lock()
		if e, ok := s.cache[key]; ok && time.Now().Before(e.expires) {
			s.mu.Unlock()
			return e.item, nil
		}
		s.mu.Unlock()
	}

	item, err := s.lookup(itemType, itemID)
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		s.mu.Lock()
		s.cache[key] = cacheEntry{item: item, expires: time.Now().Add(s.ttl)}
		s.mu.Unlock()
	}
	return item, nil
}

func (s *CatalogService) lookup(itemType string, itemID uint) (*ResolvedItem, error) {
	switch itemType {
	case entity.ItemTypeService:
		row, err := s.Repo.GetService(itemID)
		if err != nil {
			return nil, notFoundOr(err)
		}
		return &ResolvedItem{Name: row.Name, Description: row.Description, Photo: row.Photo, UnitPrice: row.Price}, nil
	case entity.ItemTypeMenu:
		row, err := s.Repo.GetMenuItem(itemID)
		if err != nil {
			return nil, notFoundOr(err)
		}
		return &ResolvedItem{Name: row.Name, Description: row.Description, Photo: row.Photo, UnitPrice: row.Price}, nil
	default:
		return nil, ErrNotFound
	}
}

// Invalidate drops every cached entry, e.g. after a catalog import.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string]cacheEntry)
	s.mu.Unlock()
}

func (s *CatalogService) ListServices() ([]entity.Service, error) { return s.Repo.ListServices() }
func (s *CatalogService) ListMenu() ([]entity.MenuItem, error)    { return s.Repo.ListMenu() }

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
