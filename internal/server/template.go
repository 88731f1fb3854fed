package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tmpldomain "github.com/rackworks/catalog/internal/template/domain"
	tadomain "github.com/rackworks/catalog/internal/templateattr/domain"
)

func (s *Server) CreateTemplate(c *gin.Context) {
	var req tmpldomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTemplates(c *gin.Context) {
	var query struct {
		Name    string `form:"name"`
		GroupID string `form:"group_id"`
		Active  string `form:"active"`
		SortBy  string `form:"sort_by"`
		OrderBy string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}
	groupID, err := parseOptionalInt64(query.GroupID)
	if err != nil {
		AbortWithError(c, newValidationError("group_id", "invalid_group_id", "invalid group id"))
		return
	}

	resp, err := s.templateSvc.List(c.Request.Context(), tmpldomain.ListRequest{
		Name:    strings.TrimSpace(query.Name),
		GroupID: groupID,
		Active:  active,
		SortBy:  strings.TrimSpace(query.SortBy),
		OrderBy: strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.templateSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTemplate(c *gin.Context) {
	var req tmpldomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.templateSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchiveTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.templateSvc.Archive(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTemplateAttributes(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.templateAttrSvc.List(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReconcileTemplateAttributes(c *gin.Context) {
	var req tadomain.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.templateAttrSvc.Reconcile(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isTemplateValidationError(err error) bool {
	switch err {
	case tmpldomain.ErrInvalidID,
		tmpldomain.ErrInvalidName,
		tmpldomain.ErrUnknownProperty,
		tmpldomain.ErrFilterPropertyNotShown,
		tmpldomain.ErrFilterAttributeUnbound:
		return true
	default:
		return false
	}
}

func isBindingValidationError(err error) bool {
	switch err {
	case tadomain.ErrInvalidID,
		tadomain.ErrUnknownAttribute:
		return true
	default:
		return false
	}
}
