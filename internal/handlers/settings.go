package handlers

import (
	"errors"
	"net/http"

	"github.com/berckan/domainwishlist/internal/settings"

	"github.com/gin-gonic/gin"
)

// SettingsStore is the persistence the settings endpoints need.
type SettingsStore interface {
	Get(key string) (settings.Setting, error)
	Set(key, value string) (settings.Setting, error)
	All() ([]settings.Setting, error)
	Delete(key string) error
}

type SettingsHandler struct {
	store SettingsStore
}

func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

type setSettingRequest struct {
	Value string `json:"value" binding:"max=4096"`
}

func (h *SettingsHandler) List(c *gin.Context) {
	list, err := h.store.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.store.Get(c.Param("key"))
	if err != nil {
		writeSettingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Put(c *gin.Context) {
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := h.store.Set(c.Param("key"), req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("key")); err != nil {
		writeSettingsError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeSettingsError(c *gin.Context, err error) {
	if errors.Is(err, settings.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
