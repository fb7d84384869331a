package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/berckan/domainwishlist/internal/wishlist"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WishlistHandler struct {
	svc *wishlist.Service
}

func NewWishlistHandler(svc *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

type entryRequest struct {
	Domain   string `json:"domain" binding:"required,max=253"`
	Category string `json:"category" binding:"max=64"`
	Note     string `json:"note" binding:"max=1000"`
}

// List returns the wishlist through the current filter and sort order.
// ?category= and ?sort=asc|desc update them first.
func (h *WishlistHandler) List(c *gin.Context) {
	var order wishlist.SortOrder
	if raw := c.Query("sort"); raw != "" {
		o, err := wishlist.ParseSortOrder(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order = o
	}
	c.JSON(http.StatusOK, h.svc.List(c.Query("category"), order))
}

func (h *WishlistHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, err := h.svc.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *WishlistHandler) Create(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.Add(req.Domain, req.Category, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *WishlistHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.Update(id, req.Domain, req.Category, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *WishlistHandler) ToggleNotification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, err := h.svc.ToggleNotification(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *WishlistHandler) ToggleSelect(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	selected, err := h.svc.ToggleSelect(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "selected": selected})
}

func (h *WishlistHandler) SelectAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"selected": h.svc.SelectAll()})
}

func (h *WishlistHandler) DeleteSelected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deleted": h.svc.DeleteSelected()})
}

// Check runs a manual availability check over the whole wishlist and waits for it.
// The cycle outlives a client that hangs up so its results are still written back.
func (h *WishlistHandler) Check(c *gin.Context) {
	report, err := h.svc.CheckAll(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *WishlistHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.svc.Categories()})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wishlist.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, wishlist.ErrInvalidDomain):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
