package assistant

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Provider Provider
	Logger   *zap.Logger
}

func NewHandler(p Provider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Provider: p, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
}

type generateReq struct {
	Prompt  string    `json:"prompt"`
	History []Message `json:"history"`
}

type GenerateResult struct {
	Reply string `json:"reply"`
	Code  string `json:"code"`
	Name  string `json:"name"`
}

// Transcript is the system prompt, then prior turns, then the new prompt.
// History entries with roles other than user/assistant are dropped.
func Transcript(history []Message, prompt string) []Message {
	out := make([]Message, 0, len(history)+2)
	out = append(out, Message{Role: RoleSystem, Content: SystemPrompt})
	for _, m := range history {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		out = append(out, m)
	}
	return append(out, Message{Role: RoleUser, Content: prompt})
}

// Parse splits a reply into its component source and name.
func Parse(reply string) GenerateResult {
	res := GenerateResult{Reply: reply}
	if code, ok := ExtractCode(reply); ok {
		res.Code = code
		res.Name = ComponentName(code)
	}
	return res
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON body"})
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Prompt is required"})
		return
	}

	reply, err := h.Provider.Complete(c.Request.Context(), Transcript(req.History, prompt))
	if err != nil {
		h.Logger.Error("generate component", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to generate component"})
		return
	}

	res := Parse(reply)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reply":   res.Reply,
		"code":    res.Code,
		"name":    res.Name,
	})
}
