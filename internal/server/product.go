package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	padomain "github.com/rackworks/catalog/internal/productattr/domain"
)

func (s *Server) CreateProduct(c *gin.Context) {
	var req proddomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		TemplateID    string `form:"template_id"`
		ScopeID       string `form:"scope_id"`
		ServiceID     string `form:"service_id"`
		ServiceTypeID string `form:"service_type_id"`
		RegionID      string `form:"region_id"`
		Active        string `form:"active"`
		SortBy        string `form:"sort_by"`
		OrderBy       string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := proddomain.ListRequest{
		TemplateID: strings.TrimSpace(query.TemplateID),
		SortBy:     strings.TrimSpace(query.SortBy),
		OrderBy:    strings.TrimSpace(query.OrderBy),
		Filters:    filterParams(c.Request.URL.Query()),
	}

	var err error
	if req.Active, err = parseOptionalBool(query.Active); err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}
	if req.ScopeID, err = parseOptionalInt64(query.ScopeID); err != nil {
		AbortWithError(c, newValidationError("scope_id", "invalid_scope_id", "invalid scope id"))
		return
	}
	if req.ServiceID, err = parseOptionalInt64(query.ServiceID); err != nil {
		AbortWithError(c, newValidationError("service_id", "invalid_service_id", "invalid service id"))
		return
	}
	if req.ServiceTypeID, err = parseOptionalInt64(query.ServiceTypeID); err != nil {
		AbortWithError(c, newValidationError("service_type_id", "invalid_service_type_id", "invalid service type id"))
		return
	}
	if req.RegionID, err = parseOptionalInt64(query.RegionID); err != nil {
		AbortWithError(c, newValidationError("region_id", "invalid_region_id", "invalid region id"))
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req proddomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.productSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchiveProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.Archive(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProductValues(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productAttrSvc.ListByProduct(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReconcileProductValues(c *gin.Context) {
	var req padomain.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productAttrSvc.Reconcile(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isProductValidationError(err error) bool {
	switch err {
	case proddomain.ErrInvalidID,
		proddomain.ErrInvalidName:
		return true
	default:
		return false
	}
}

func isValueValidationError(err error) bool {
	switch err {
	case padomain.ErrInvalidID,
		padomain.ErrAttributeNotBound,
		padomain.ErrRequiredValueEmpty,
		padomain.ErrValueInvalid:
		return true
	default:
		return false
	}
}
