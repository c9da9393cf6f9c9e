package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/stores"
	"github.com/gin-gonic/gin"
)

func (c *Controller) RefreshCatalog(ctx *gin.Context) {
	var query models.ProductQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	page, err := c.sf.Catalog.FetchProducts(ctx.Request.Context(), query)
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages,
		"catalog":    c.sf.Catalog.State(),
	})
}

func (c *Controller) GetCatalog(ctx *gin.Context) {
	var query struct {
		Page  int `form:"page" binding:"omitempty,min=1"`
		Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if query.Limit > 0 {
		c.sf.Catalog.SetLimit(query.Limit)
	}
	if query.Page > 0 {
		c.sf.Catalog.SetPage(query.Page)
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"catalog": c.sf.Catalog.State()})
}

func (c *Controller) SetFilters(ctx *gin.Context) {
	var filter models.ProductFilter
	if err := ctx.ShouldBindJSON(&filter); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	c.sf.Catalog.SetFilters(stores.MergeFilter(filter))
	sendJSONResponse(ctx, http.StatusOK, gin.H{"catalog": c.sf.Catalog.State()})
}

func (c *Controller) ClearFilters(ctx *gin.Context) {
	c.sf.Catalog.ClearFilters()
	sendJSONResponse(ctx, http.StatusOK, gin.H{"catalog": c.sf.Catalog.State()})
}

func (c *Controller) SetSortOption(ctx *gin.Context) {
	var body struct {
		SortOption models.SortOption `json:"sortOption" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := c.sf.Catalog.SetSortOption(body.SortOption); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidSortOption)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"catalog": c.sf.Catalog.State()})
}

func (c *Controller) SearchProducts(ctx *gin.Context) {
	products := c.sf.Catalog.SearchProducts(ctx.Query("q"))
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products, "total": len(products)})
}

// GetProduct serves a product from the loaded catalog, asking the backend
// only when it is not there, and records the view.
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.lookupProduct(ctx, ctx.Param("id"))
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	c.sf.User.AddToRecentlyViewed(product.ID)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"product":    product,
		"inWishlist": c.sf.User.IsInWishlist(product.ID),
		"inCart":     c.sf.Cart.ItemCount(product.ID),
	})
}

func (c *Controller) lookupProduct(ctx *gin.Context, id string) (models.Product, error) {
	if product, ok := c.sf.Catalog.ProductByID(id); ok {
		return product, nil
	}
	return c.sf.Catalog.FetchProductByID(ctx.Request.Context(), id)
}
