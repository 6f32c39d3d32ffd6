package handlers

import (
	"errors"
	"fortstats/api/filters"
	accountservice "fortstats/api/services/account"
	accountfetcher "fortstats/fetcher/data/account"
	"fortstats/fetcher/repositories"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AccountHandler is the handler for the account endpoints.
type AccountHandler struct {
	accountService *accountservice.AccountService
}

// NewAccountHandler creates a new instance of the account handler.
func NewAccountHandler(service *accountservice.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: service,
	}
}

// GetAccounts handles live lookups of a comma separated list of usernames.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	var qp filters.AccountsParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.accountService.FetchAccounts(c.Request.Context(), qp.List())
	if err != nil {
		switch {
		case errors.Is(err, accountfetcher.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, accountfetcher.ErrMalformedResponse):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetLatest handles requests for the latest recorded snapshot of a username.
func (h *AccountHandler) GetLatest(c *gin.Context) {
	result, err := h.accountService.GetLatest(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetHistory handles requests for the recorded snapshots of a username.
func (h *AccountHandler) GetHistory(c *gin.Context) {
	var qp filters.AccountHistoryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.accountService.GetHistory(c.Request.Context(), c.Param("username"), qp.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
