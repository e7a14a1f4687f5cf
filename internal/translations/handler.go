package translations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Cache  *Cache
	Logger *zap.Logger
}

func NewHandler(cache *Cache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Cache: cache, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/locales", h.locales)
	rg.GET("/translations/:locale", h.all)
	rg.GET("/translations/:locale/:key", h.get)
}

func (h *Handler) locales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "locales": Locales()})
}

func (h *Handler) all(c *gin.Context) {
	locale := c.Param("locale")
	m, err := h.Cache.All(c.Request.Context(), locale)
	if err != nil {
		h.fail(c, locale, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "locale": locale, "translations": m})
}

func (h *Handler) get(c *gin.Context) {
	locale, key := c.Param("locale"), c.Param("key")
	text, err := h.Cache.Get(c.Request.Context(), key, locale, c.Query("fallback"))
	if err != nil {
		h.fail(c, locale, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "locale": locale, "key": key, "value": text})
}

func (h *Handler) fail(c *gin.Context, locale string, err error) {
	if errors.Is(err, ErrInvalidLocale) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsupported locale: " + locale})
		return
	}
	h.Logger.Error("load translations", zap.String("locale", locale), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load translations"})
}
