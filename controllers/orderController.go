package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/utils"
	"github.com/gin-gonic/gin"
)

func draftView(draft models.OrderDraft) gin.H {
	return gin.H{
		"draft":          draft,
		"formattedTotal": utils.FormatPrice(draft.TotalAmount + draft.ShippingFee),
	}
}

func (c *Controller) StartCheckout(ctx *gin.Context) {
	items := c.sf.Cart.Items()
	if len(items) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgCartEmpty)
		return
	}
	draft, err := c.sf.Orders.CreateOrder(items)
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, draftView(draft))
}

func (c *Controller) SetShippingAddress(ctx *gin.Context) {
	var addr models.ShippingAddress
	if err := ctx.ShouldBindJSON(&addr); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	c.sf.Orders.SetShippingAddress(addr)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"shippingAddress": addr})
}

func (c *Controller) SetPaymentMethod(ctx *gin.Context) {
	var body struct {
		PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if !body.PaymentMethod.Valid() {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidPayment)
		return
	}
	c.sf.Orders.SetPaymentMethod(body.PaymentMethod)
	draft, ok := c.sf.Orders.Draft()
	if !ok {
		sendErrorResponse(ctx, http.StatusConflict, msgNoDraft)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, draftView(draft))
}

func (c *Controller) SubmitOrder(ctx *gin.Context) {
	order, err := c.sf.Orders.SubmitOrder(ctx.Request.Context())
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully.",
		"order":   order,
	})
}

func (c *Controller) GetOrders(ctx *gin.Context) {
	orders, err := c.sf.Orders.FetchOrders(ctx.Request.Context())
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	order, err := c.sf.Orders.FetchOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func (c *Controller) CancelOrder(ctx *gin.Context) {
	if err := c.sf.Orders.CancelOrder(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order canceled."})
}

func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if !body.Status.Valid() {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidStatus)
		return
	}
	if err := c.sf.Orders.UpdateOrderStatus(ctx.Request.Context(), ctx.Param("id"), body.Status); err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated."})
}
