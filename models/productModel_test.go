package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiProductPageToPage(t *testing.T) {
	page := ApiProductPage{
		Content: []ApiProduct{{
			ID:          "p1",
			Name:        "Linen Shirt",
			Brand:       ApiBrand{ID: "b1", Name: "Amexan"},
			Price:       39000,
			Category:    ApiCategory{ID: "tops", Name: "Tops"},
			Subcategory: &ApiCategory{ID: "shirts", Name: "Shirts"},
		}},
		TotalElements: 31,
		TotalPages:    3,
		Number:        1,
		Size:          12,
	}

	got := page.ToPage()
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 12, got.Limit)
	assert.Equal(t, 31, got.Total)
	require.Len(t, got.Products, 1)

	p := got.Products[0]
	assert.Equal(t, "Amexan", p.Brand)
	assert.Equal(t, "tops", p.Category)
	assert.Equal(t, "shirts", p.Subcategory)
	assert.Equal(t, []string{PlaceholderImage}, p.Images)
	assert.Empty(t, p.Tags)
}
