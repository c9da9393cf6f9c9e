package models

import "time"

type Size struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type Color struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Available bool   `json:"available"`
}

// Product is the storefront's read-only view of a catalog entry. Prices are
// whole currency units.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"originalPrice,omitempty"`
	DiscountRate  int       `json:"discountRate,omitempty"`
	Images        []string  `json:"images"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Description   string    `json:"description"`
	Sizes         []Size    `json:"sizes"`
	Colors        []Color   `json:"colors"`
	Tags          []string  `json:"tags"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	IsNew         bool      `json:"isNew"`
	IsBest        bool      `json:"isBest"`
	IsOnSale      bool      `json:"isOnSale"`
	Stock         int       `json:"stock"`
	IsSoldoutSoon bool      `json:"isSoldoutSoon,omitempty"`
	IsEvent       bool      `json:"isEvent,omitempty"`
	IsSoldout     bool      `json:"isSoldout,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

const PlaceholderImage = "/products/placeholder.jpg"

type ApiBrand struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ApiCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ApiProduct is the product shape returned by the backend.
type ApiProduct struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Brand         ApiBrand     `json:"brand"`
	Price         int64        `json:"price"`
	OriginalPrice int64        `json:"originalPrice"`
	DiscountRate  int          `json:"discountRate"`
	Category      ApiCategory  `json:"category"`
	Subcategory   *ApiCategory `json:"subcategory"`
	Description   string       `json:"description"`
	Rating        float64      `json:"rating"`
	ReviewCount   int          `json:"reviewCount"`
	IsNew         bool         `json:"isNew"`
	IsBest        bool         `json:"isBest"`
	IsOnSale      bool         `json:"isOnSale"`
	IsSoldoutSoon bool         `json:"isSoldoutSoon"`
	IsSoldout     bool         `json:"isSoldout"`
	Stock         int          `json:"stock"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ToProduct flattens the backend shape. The backend carries no images, sizes,
// colors or tags yet.
func (p ApiProduct) ToProduct() Product {
	product := Product{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		DiscountRate:  p.DiscountRate,
		Images:        []string{PlaceholderImage},
		Category:      p.Category.ID,
		Description:   p.Description,
		Sizes:         []Size{},
		Colors:        []Color{},
		Tags:          []string{},
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		IsNew:         p.IsNew,
		IsBest:        p.IsBest,
		IsOnSale:      p.IsOnSale,
		Stock:         p.Stock,
		IsSoldoutSoon: p.IsSoldoutSoon,
		IsSoldout:     p.IsSoldout,
		CreatedAt:     p.CreatedAt,
	}
	if p.Subcategory != nil {
		product.Subcategory = p.Subcategory.ID
	}
	return product
}

// ApiProductPage is the Spring-style page envelope of GET /products.
type ApiProductPage struct {
	Content       []ApiProduct `json:"content"`
	TotalElements int          `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	Number        int          `json:"number"`
	Size          int          `json:"size"`
	First         bool         `json:"first"`
	Last          bool         `json:"last"`
	Empty         bool         `json:"empty"`
}

type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// ToPage converts the zero-based backend page into a one-based ProductPage.
func (p ApiProductPage) ToPage() ProductPage {
	products := make([]Product, 0, len(p.Content))
	for _, ap := range p.Content {
		products = append(products, ap.ToProduct())
	}
	return ProductPage{
		Products:   products,
		Total:      p.TotalElements,
		Page:       p.Number + 1,
		Limit:      p.Size,
		TotalPages: p.TotalPages,
	}
}

type ProductQuery struct {
	Page     int    `form:"page" json:"page,omitempty"`
	Limit    int    `form:"limit" json:"limit,omitempty"`
	Category string `form:"category" json:"category,omitempty"`
	Brand    string `form:"brand" json:"brand,omitempty"`
	Search   string `form:"search" json:"search,omitempty"`
	Sort     string `form:"sort" json:"sort,omitempty"`
	MinPrice int64  `form:"minPrice" json:"minPrice,omitempty"`
	MaxPrice int64  `form:"maxPrice" json:"maxPrice,omitempty"`
}

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type ProductFilter struct {
	Category   string      `json:"category,omitempty"`
	Brands     []string    `json:"brands,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Sizes      []string    `json:"sizes,omitempty"`
	Colors     []string    `json:"colors,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
}

type SortOption string

const (
	SortPopular   SortOption = "popular"
	SortNewest    SortOption = "newest"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortRating    SortOption = "rating"
)

func (s SortOption) Valid() bool {
	switch s {
	case SortPopular, SortNewest, SortPriceLow, SortPriceHigh, SortRating:
		return true
	}
	return false
}
