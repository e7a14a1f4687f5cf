package localization

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uiforge/internal/storage"
	"uiforge/pkg/models"
)

// Invalidator drops cached translations after the table changes.
type Invalidator interface {
	Clear()
}

type Handler struct {
	Engine *Engine
	Store  *storage.Store
	Cache  Invalidator
	Logger *zap.Logger
}

func NewHandler(engine *Engine, cache Invalidator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Engine: engine, Store: engine.Store, Cache: cache, Logger: logger}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/localizations", h.list)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/localize", h.localize)
	rg.POST("/localizations", h.create)
	rg.PUT("/localizations/:id", h.update)
	rg.DELETE("/localizations/:id", h.delete)
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func (h *Handler) invalidate() {
	if h.Cache != nil {
		h.Cache.Clear()
	}
}

type localizeReq struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (h *Handler) localize(c *gin.Context) {
	var req localizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		fail(c, http.StatusBadRequest, "Code is required")
		return
	}

	res, err := h.Engine.Localize(c.Request.Context(), req.Code, req.Name)
	if err != nil {
		h.Logger.Error("localize component", zap.String("name", req.Name), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to localize component")
		return
	}
	h.invalidate()

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"code":           res.Code,
		"extractedTexts": res.ExtractedTexts,
		"textToKeyMap":   res.TextToKey,
	})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Store.ListLocalizations(c.Request.Context())
	if err != nil {
		h.Logger.Error("list localizations", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to fetch localizations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "localizations": items})
}

type createReq struct {
	Key string `json:"key"`
	EN  string `json:"en"`
	ES  string `json:"es"`
	FR  string `json:"fr"`
	DE  string `json:"de"`
	JA  string `json:"ja"`
	ZH  string `json:"zh"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		fail(c, http.StatusBadRequest, "Key is required")
		return
	}

	entry := models.LocalizationEntry{
		ID:  storage.NewID("loc"),
		Key: key,
		EN:  req.EN,
		ES:  req.ES,
		FR:  req.FR,
		DE:  req.DE,
		JA:  req.JA,
		ZH:  req.ZH,
	}
	if err := h.Store.CreateLocalization(c.Request.Context(), entry); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			fail(c, http.StatusConflict, "Localization key already exists")
			return
		}
		h.Logger.Error("create localization", zap.String("key", key), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to create localization")
		return
	}
	h.invalidate()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Localization created successfully",
		"id":      entry.ID,
	})
}

type updateReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.Store.UpdateLocalization(c.Request.Context(), id, req.Field, req.Value); err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidField):
			fail(c, http.StatusBadRequest, "Invalid field: "+req.Field)
		case errors.Is(err, storage.ErrDuplicateKey):
			fail(c, http.StatusConflict, "Localization key already exists")
		default:
			h.Logger.Error("update localization", zap.String("id", id), zap.Error(err))
			fail(c, http.StatusInternalServerError, "Failed to update localization")
		}
		return
	}
	h.invalidate()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Localization updated successfully"})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.DeleteLocalization(c.Request.Context(), id); err != nil {
		h.Logger.Error("delete localization", zap.String("id", id), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to delete localization")
		return
	}
	h.invalidate()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Localization deleted successfully"})
}
