package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
)

type createAttributeRequest struct {
	Key             string         `json:"key"`
	DisplayName     string         `json:"display_name"`
	DataType        string         `json:"data_type"`
	Unit            *string        `json:"unit"`
	DefaultValue    *string        `json:"default_value"`
	ValidationRules map[string]any `json:"validation_rules"`
	Tags            []string       `json:"tags"`
	ListOptions     []string       `json:"list_options"`
	Active          *bool          `json:"active"`
}

func (s *Server) CreateAttribute(c *gin.Context) {
	var req createAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.attributeSvc.Create(c.Request.Context(), attrdomain.CreateRequest{
		Key:             strings.TrimSpace(req.Key),
		DisplayName:     strings.TrimSpace(req.DisplayName),
		DataType:        strings.TrimSpace(req.DataType),
		Unit:            req.Unit,
		DefaultValue:    req.DefaultValue,
		ValidationRules: req.ValidationRules,
		Tags:            req.Tags,
		ListOptions:     req.ListOptions,
		Active:          req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAttributes(c *gin.Context) {
	var query struct {
		Key       string `form:"key"`
		DataType  string `form:"data_type"`
		Tag       string `form:"tag"`
		Active    string `form:"active"`
		SortBy    string `form:"sort_by"`
		OrderBy   string `form:"order_by"`
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
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

	resp, err := s.attributeSvc.List(c.Request.Context(), attrdomain.ListRequest{
		Key:       strings.TrimSpace(query.Key),
		DataType:  strings.TrimSpace(query.DataType),
		Tag:       strings.TrimSpace(query.Tag),
		Active:    active,
		SortBy:    strings.TrimSpace(query.SortBy),
		OrderBy:   strings.TrimSpace(query.OrderBy),
		PageToken: strings.TrimSpace(query.PageToken),
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAttribute(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.attributeSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAttribute(c *gin.Context) {
	var req attrdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.attributeSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchiveAttribute(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.attributeSvc.Archive(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isAttributeValidationError(err error) bool {
	switch err {
	case attrdomain.ErrInvalidID,
		attrdomain.ErrInvalidPageToken,
		attrdomain.ErrInvalidKey,
		attrdomain.ErrInvalidDisplayName,
		attrdomain.ErrInvalidDataType,
		attrdomain.ErrMissingListOptions,
		attrdomain.ErrInvalidDefault,
		attrdomain.ErrDataTypeImmutable:
		return true
	default:
		return false
	}
}
