package components

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uiforge/internal/events"
	"uiforge/internal/storage"
)

// Publisher receives component change events; *events.Hub is the live one.
type Publisher interface {
	Publish(ev events.ComponentEvent)
}

type Handler struct {
	Repo   *Repo
	Events Publisher
	Logger *zap.Logger
}

func NewHandler(repo *Repo, pub Publisher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Repo: repo, Events: pub, Logger: logger}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)    // GET /components
	rg.GET("/:id", h.get) // GET /components/:id
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) publish(ev events.ComponentEvent) {
	if h.Events != nil {
		h.Events.Publish(ev)
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("list components", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to fetch components")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "components": items})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	comp, err := h.Repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(c, http.StatusNotFound, "Component not found")
			return
		}
		h.Logger.Error("get component", zap.String("id", id), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to fetch component")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "component": comp})
}

type createReq struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	comp, err := h.Repo.Create(c.Request.Context(), req.Name, req.Code, req.Description)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			fail(c, http.StatusBadRequest, "Name and code are required")
			return
		}
		h.Logger.Error("create component", zap.String("name", req.Name), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to create component")
		return
	}

	h.publish(events.ComponentEvent{Type: events.ComponentCreated, ComponentID: comp.ID, Name: comp.Name})
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Component created successfully",
		"id":      comp.ID,
	})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var p Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	updated, err := h.Repo.Update(c.Request.Context(), id, p)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			fail(c, http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrValidation.Error()+": "))
			return
		}
		h.Logger.Error("update component", zap.String("id", id), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to update component")
		return
	}

	if updated {
		ev := events.ComponentEvent{Type: events.ComponentUpdated, ComponentID: id}
		if p.Name != nil {
			ev.Name = *p.Name
		}
		h.publish(ev)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Component updated successfully"})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		h.Logger.Error("delete component", zap.String("id", id), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to delete component")
		return
	}

	h.publish(events.ComponentEvent{Type: events.ComponentDeleted, ComponentID: id})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Component deleted successfully"})
}
