// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/research-analytics/internal/registry"
	"github.com/pdiddy/research-analytics/internal/suggest"
)

type invokeRequest struct {
	Function   string         `json:"function" binding:"required"`
	Parameters map[string]any `json:"parameters"`
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// StatusFor maps an envelope to its HTTP status.
func StatusFor(env registry.Envelope) int {
	if env.Success {
		return http.StatusOK
	}
	switch env.Error.Code {
	case registry.CodeFunctionNotFound:
		return http.StatusNotFound
	case registry.CodeInvalidParameters:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// malformed is the envelope returned for a body that is not a call.
func malformed(function string, err error) registry.Envelope {
	return registry.Envelope{
		Function: function,
		Error: &registry.ErrorDetail{
			Code:    registry.CodeInvalidParameters,
			Message: "malformed request body: " + err.Error(),
		},
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"functions": s.reg.Len(),
	})
}

func (s *Server) functions(c *gin.Context) {
	switch format := c.DefaultQuery("format", "native"); format {
	case "native":
		c.JSON(http.StatusOK, s.reg.Introspect())
	case "openai":
		c.JSON(http.StatusOK, s.reg.OpenAITools())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format " + format + ", want native or openai"})
	}
}

func (s *Server) invoke(c *gin.Context) {
	var req invokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, malformed(req.Function, err))
		return
	}
	env := s.reg.Invoke(c.Request.Context(), req.Function, req.Parameters)
	c.JSON(StatusFor(env), env)
}

func (s *Server) invokeBatch(c *gin.Context) {
	var req registry.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body: " + err.Error()})
		return
	}
	if len(req.Calls) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch has no calls"})
		return
	}
	if s.batch.MaxItems > 0 && len(req.Calls) > s.batch.MaxItems {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "batch too large",
			"max_items": s.batch.MaxItems,
			"received":  len(req.Calls),
		})
		return
	}
	results := s.reg.InvokeBatch(c.Request.Context(), req.Calls)
	c.JSON(http.StatusOK, registry.BatchResponse{Results: results})
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, suggest.Suggest(req.Message))
}
