package stores

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Kariqs/amexan-storefront/logging"
	"github.com/Kariqs/amexan-storefront/models"
)

const (
	DefaultPageLimit = 12
	defaultSort      = models.SortPopular
)

type ProductFetcher interface {
	Products(ctx context.Context, q models.ProductQuery) (models.ProductPage, error)
	Product(ctx context.Context, id string) (models.Product, error)
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// CatalogState is a point-in-time copy of the catalog for readers.
type CatalogState struct {
	Products   []models.Product     `json:"products"`
	Filters    models.ProductFilter `json:"filters"`
	Sort       models.SortOption    `json:"sortOption"`
	Query      string               `json:"query,omitempty"`
	Pagination Pagination           `json:"pagination"`
	Selected   *models.Product      `json:"selectedProduct,omitempty"`
	IsLoading  bool                 `json:"isLoading"`
	Error      string               `json:"error,omitempty"`
}

// FilterOption changes one part of the current filter set.
type FilterOption func(*models.ProductFilter)

func WithCategory(category string) FilterOption {
	return func(f *models.ProductFilter) { f.Category = category }
}

func WithBrands(brands ...string) FilterOption {
	return func(f *models.ProductFilter) { f.Brands = brands }
}

func WithPriceRange(lo, hi int64) FilterOption {
	return func(f *models.ProductFilter) { f.PriceRange = &models.PriceRange{Min: lo, Max: hi} }
}

func WithTags(tags ...string) FilterOption {
	return func(f *models.ProductFilter) { f.Tags = tags }
}

func WithSizes(sizes ...string) FilterOption {
	return func(f *models.ProductFilter) { f.Sizes = sizes }
}

func WithColors(colors ...string) FilterOption {
	return func(f *models.ProductFilter) { f.Colors = colors }
}

// MergeFilter applies every field set in partial, leaving the rest alone.
func MergeFilter(partial models.ProductFilter) FilterOption {
	return func(f *models.ProductFilter) {
		if partial.Category != "" {
			f.Category = partial.Category
		}
		if partial.Brands != nil {
			f.Brands = partial.Brands
		}
		if partial.PriceRange != nil {
			f.PriceRange = partial.PriceRange
		}
		if partial.Sizes != nil {
			f.Sizes = partial.Sizes
		}
		if partial.Colors != nil {
			f.Colors = partial.Colors
		}
		if partial.Tags != nil {
			f.Tags = partial.Tags
		}
	}
}

// CatalogStore derives the visible product list from the full set. Every
// filter or sort change recomputes from the full set, never from the
// previously visible list.
type CatalogStore struct {
	backend ProductFetcher

	mu       sync.Mutex
	products []models.Product
	visible  []models.Product
	filters  models.ProductFilter
	sort     models.SortOption
	query    string
	page     int
	limit    int
	total    int
	remote   *Pagination
	selected *models.Product
	loading  bool
	err      string
}

func NewCatalogStore(backend ProductFetcher) *CatalogStore {
	return &CatalogStore{backend: backend, sort: defaultSort, page: 1, limit: DefaultPageLimit}
}

// SetProducts replaces the full product set and recomputes the visible list.
func (c *CatalogStore) SetProducts(products []models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = slices.Clone(products)
	c.remote = nil
	c.recomputeLocked()
}

func (c *CatalogStore) recomputeLocked() {
	c.visible = sortProducts(filterProducts(c.products, c.filters), c.sort)
	c.query = ""
	c.total = len(c.visible)
}

func (c *CatalogStore) SetFilters(opts ...FilterOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, opt := range opts {
		opt(&c.filters)
	}
	c.recomputeLocked()
	c.remote = nil
	c.page = 1
}

func (c *CatalogStore) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = models.ProductFilter{}
	c.visible = slices.Clone(c.products)
	c.query = ""
	c.total = len(c.visible)
	c.remote = nil
	c.page = 1
}

func (c *CatalogStore) SetSortOption(opt models.SortOption) error {
	if !opt.Valid() {
		return fmt.Errorf("unknown sort option %q", opt)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = opt
	c.recomputeLocked()
	return nil
}

// SearchProducts matches the query case-insensitively against name, brand
// and tags over the full product set. A blank query shows everything.
func (c *CatalogStore) SearchProducts(query string) []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(query))
	c.query = q
	c.remote = nil
	c.page = 1
	if q == "" {
		c.visible = slices.Clone(c.products)
		c.total = len(c.visible)
		return slices.Clone(c.visible)
	}
	c.visible = c.visible[:0:0]
	for _, p := range c.products {
		if matchesQuery(p, q) {
			c.visible = append(c.visible, p)
		}
	}
	c.total = len(c.visible)
	return slices.Clone(c.visible)
}

func matchesQuery(p models.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	return slices.ContainsFunc(p.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), q)
	})
}

func filterProducts(products []models.Product, f models.ProductFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilter(p models.Product, f models.ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category && p.Subcategory != f.Category {
		return false
	}
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, p.Brand) {
		return false
	}
	if f.PriceRange != nil && (p.Price < f.PriceRange.Min || p.Price > f.PriceRange.Max) {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(p.Tags, func(tag string) bool { return slices.Contains(f.Tags, tag) }) {
		return false
	}
	if len(f.Sizes) > 0 && !slices.ContainsFunc(p.Sizes, func(s models.Size) bool {
		return s.Available && (slices.Contains(f.Sizes, s.ID) || slices.Contains(f.Sizes, s.Name))
	}) {
		return false
	}
	if len(f.Colors) > 0 && !slices.ContainsFunc(p.Colors, func(c models.Color) bool {
		return c.Available && (slices.Contains(f.Colors, c.ID) || slices.Contains(f.Colors, c.Name))
	}) {
		return false
	}
	return true
}

// sortProducts is stable: products that compare equal keep their order.
func sortProducts(products []models.Product, opt models.SortOption) []models.Product {
	var less func(a, b models.Product) int
	switch opt {
	case models.SortNewest:
		less = func(a, b models.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case models.SortPriceLow:
		less = func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case models.SortPriceHigh:
		less = func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) }
	case models.SortRating:
		less = func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		less = func(a, b models.Product) int { return cmp.Compare(b.ReviewCount, a.ReviewCount) }
	}
	slices.SortStableFunc(products, less)
	return products
}

func (c *CatalogStore) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.page = page
	c.remote = nil
}

// SetLimit changes the page size and goes back to the first page.
func (c *CatalogStore) SetLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit < 1 {
		limit = DefaultPageLimit
	}
	c.limit = limit
	c.page = 1
	c.remote = nil
}

// Visible returns the whole filtered, sorted list.
func (c *CatalogStore) Visible() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.visible)
}

// PageItems returns the current page of the visible list.
func (c *CatalogStore) PageItems() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageItemsLocked()
}

func (c *CatalogStore) pageItemsLocked() []models.Product {
	start := (c.page - 1) * c.limit
	if start >= len(c.visible) {
		return []models.Product{}
	}
	end := min(start+c.limit, len(c.visible))
	return slices.Clone(c.visible[start:end])
}

func (c *CatalogStore) State() CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	totalPages := 0
	if c.limit > 0 {
		totalPages = (c.total + c.limit - 1) / c.limit
	}
	state := CatalogState{
		Products: c.pageItemsLocked(),
		Filters:  c.filters,
		Sort:     c.sort,
		Query:    c.query,
		Pagination: Pagination{
			Page:       c.page,
			Limit:      c.limit,
			Total:      c.total,
			TotalPages: totalPages,
		},
		IsLoading: c.loading,
		Error:     c.err,
	}
	if c.remote != nil {
		state.Pagination = *c.remote
	}
	if c.selected != nil {
		p := *c.selected
		state.Selected = &p
	}
	return state
}

// ProductByID looks a product up in the loaded set.
func (c *CatalogStore) ProductByID(id string) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.products, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *CatalogStore) setLoading() {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
}

func (c *CatalogStore) setFailed(err error) {
	c.mu.Lock()
	c.loading = false
	c.err = err.Error()
	c.mu.Unlock()
}

// FetchProducts loads a page of products from the backend as the new full
// set. The current local filters and sort still apply on top.
func (c *CatalogStore) FetchProducts(ctx context.Context, q models.ProductQuery) (models.ProductPage, error) {
	c.setLoading()
	page, err := c.backend.Products(ctx, q)
	if err != nil {
		logging.FromCtx(ctx).Error("failed to fetch products", "error", err)
		c.setFailed(err)
		return models.ProductPage{}, fmt.Errorf("fetch products: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.products = slices.Clone(page.Products)
	c.recomputeLocked()
	c.page = 1
	if page.Limit > 0 {
		c.limit = page.Limit
	}
	// The backend pages server-side; keep its position until a local change.
	c.remote = &Pagination{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
	return page, nil
}

func (c *CatalogStore) FetchProductByID(ctx context.Context, id string) (models.Product, error) {
	c.setLoading()
	product, err := c.backend.Product(ctx, id)
	if err != nil {
		c.setFailed(err)
		return models.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}
	c.mu.Lock()
	c.loading = false
	c.selected = &product
	c.mu.Unlock()
	return product, nil
}
