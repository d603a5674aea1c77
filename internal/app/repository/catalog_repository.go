package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogFilter narrows product listings.
type CatalogFilter struct {
	Category string
	OnSale   *bool
	Query    string
}

// CatalogRepository serves the immutable product reference data.
type CatalogRepository interface {
	FindAll(filter CatalogFilter) ([]model.Product, error)
	FindByID(id int) (*model.Product, error)
	FindPopular(limit int) ([]model.Product, error)
	Categories() ([]string, error)
}

type catalogRepository struct {
	mu       sync.RWMutex
	products []model.Product
	byID     map[int]model.Product
}

// NewCatalogRepository builds an in-memory catalog from the given
// products. Pass nil to use the built-in dataset.
func NewCatalogRepository(products []model.Product) CatalogRepository {
	if products == nil {
		products = SeedProducts()
	}

	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	logger.Info("Catalog loaded", map[string]interface{}{
		"product_count": len(products),
	})
	return &catalogRepository{products: products, byID: byID}
}

// NewCatalogRepositoryFromFile loads a JSON catalog produced by cmd/seed.
func NewCatalogRepositoryFromFile(path string) (CatalogRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no products", path)
	}
	return NewCatalogRepository(products), nil
}

func (r *catalogRepository) FindAll(filter CatalogFilter) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var result []model.Product
	for _, p := range r.products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.OnSale != nil && p.IsOnSale != *filter.OnSale {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *catalogRepository) FindByID(id int) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

// FindPopular returns products ordered by rating, best first.
func (r *catalogRepository) FindPopular(limit int) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := append([]model.Product(nil), r.products...)
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Rating != products[j].Rating {
			return products[i].Rating > products[j].Rating
		}
		return products[i].ReviewCount > products[j].ReviewCount
	})

	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}

func (r *catalogRepository) Categories() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var categories []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}
