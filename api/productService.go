package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Kariqs/amexan-storefront/models"
)

func productQueryParams(q models.ProductQuery) map[string]string {
	params := map[string]string{}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Category != "" {
		params["category"] = q.Category
	}
	if q.Brand != "" {
		params["brand"] = q.Brand
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.Sort != "" {
		params["sort"] = q.Sort
	}
	if q.MinPrice > 0 {
		params["minPrice"] = strconv.FormatInt(q.MinPrice, 10)
	}
	if q.MaxPrice > 0 {
		params["maxPrice"] = strconv.FormatInt(q.MaxPrice, 10)
	}
	return params
}

func (c *Client) Products(ctx context.Context, q models.ProductQuery) (models.ProductPage, error) {
	var page models.ApiProductPage
	if err := c.do(ctx, http.MethodGet, "/products", nil, &page, withQuery(productQueryParams(q))); err != nil {
		return models.ProductPage{}, err
	}
	return page.ToPage(), nil
}

func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	var p models.ApiProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &p); err != nil {
		return models.Product{}, err
	}
	return p.ToProduct(), nil
}
