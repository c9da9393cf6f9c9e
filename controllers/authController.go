package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/amexan-storefront/api"
	"github.com/Kariqs/amexan-storefront/logging"
	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/stores"
	"github.com/gin-gonic/gin"
)

const (
	// Standard response messages
	msgInvalidInput       = "invalid input"
	msgUserCreated        = "account created successfully."
	msgLoggedOut          = "logged out successfully."
	msgPasswordChanged    = "password changed successfully."
	msgLoginRequired      = "login required"
	msgBackendUnavailable = "shop backend is unavailable, try again later."
	msgOrderNotFound      = "order not found"
	msgNoDraft            = "start checkout before submitting an order."
	msgInvalidTransition  = "order cannot move to that status."
	msgSubmitInProgress   = "order is already being submitted."
	msgCartEmpty          = "cart is empty"
	msgOptionUnavailable  = "selected size or color is not available"
	msgInvalidSortOption  = "unknown sort option"
	msgInvalidPayment     = "unknown payment method"
	msgInvalidStatus      = "unknown order status"
	msgMissingAvatar      = "avatar file is required"
	msgAvatarUploadFailed = "failed to upload avatar"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// respondWithStoreError maps store and backend errors onto HTTP answers.
func respondWithStoreError(ctx *gin.Context, err error) {
	logging.From(ctx).Warn("request failed", "error", err)
	_ = ctx.Error(err)

	var apiErr *api.APIError
	switch {
	case errors.Is(err, stores.ErrOrderNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
	case errors.Is(err, stores.ErrNoDraft):
		sendErrorResponse(ctx, http.StatusConflict, msgNoDraft)
	case errors.Is(err, stores.ErrInvalidTransition):
		sendErrorResponse(ctx, http.StatusConflict, msgInvalidTransition)
	case errors.Is(err, stores.ErrSubmitInProgress):
		sendErrorResponse(ctx, http.StatusConflict, msgSubmitInProgress)
	case errors.Is(err, stores.ErrNotAuthenticated), errors.Is(err, api.ErrUnauthorized):
		sendErrorResponse(ctx, http.StatusUnauthorized, msgLoginRequired)
	case errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
		sendErrorResponse(ctx, apiErr.StatusCode, apiErr.Message)
	default:
		sendErrorResponse(ctx, http.StatusBadGateway, msgBackendUnavailable)
	}
}

func (c *Controller) Signup(ctx *gin.Context) {
	var data models.SignupData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	user, err := c.sf.User.Signup(ctx.Request.Context(), data)
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "user": user})
}

func (c *Controller) Login(ctx *gin.Context) {
	var data models.LoginData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	user, err := c.sf.User.Login(ctx.Request.Context(), data)
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func (c *Controller) Logout(ctx *gin.Context) {
	c.sf.Logout(ctx.Request.Context())
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut})
}

func (c *Controller) GetCurrentUser(ctx *gin.Context) {
	user, err := c.sf.User.LoadCurrentUser(ctx.Request.Context())
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func (c *Controller) CheckEmail(ctx *gin.Context) {
	var query struct {
		Email string `form:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	exists, err := c.sf.User.CheckEmail(ctx.Request.Context(), query.Email)
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"exists": exists})
}

func (c *Controller) UpdateProfile(ctx *gin.Context) {
	var update models.ProfileUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	user, err := c.sf.User.UpdateProfile(ctx.Request.Context(), update)
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	var data models.ChangePasswordData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := c.sf.User.ChangePassword(ctx.Request.Context(), data); err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgPasswordChanged})
}

func (c *Controller) UploadAvatar(ctx *gin.Context) {
	file, err := ctx.FormFile("avatar")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgMissingAvatar)
		return
	}
	f, err := file.Open()
	if err != nil {
		logging.From(ctx).Error("error opening avatar", "file", file.Filename, "error", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgAvatarUploadFailed)
		return
	}
	defer f.Close()

	user, err := c.sf.User.UploadAvatar(ctx.Request.Context(), file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}
