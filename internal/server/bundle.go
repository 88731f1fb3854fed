package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	bndomain "github.com/rackworks/catalog/internal/bundle/domain"
)

func (s *Server) CreateBundle(c *gin.Context) {
	var req bndomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bundleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBundles(c *gin.Context) {
	var query struct {
		ProductID string `form:"product_id"`
		Active    string `form:"active"`
		SortBy    string `form:"sort_by"`
		OrderBy   string `form:"order_by"`
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

	resp, err := s.bundleSvc.List(c.Request.Context(), bndomain.ListRequest{
		ProductID: strings.TrimSpace(query.ProductID),
		Active:    active,
		SortBy:    strings.TrimSpace(query.SortBy),
		OrderBy:   strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBundle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.bundleSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBundle(c *gin.Context) {
	var req bndomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.bundleSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchiveBundle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.bundleSvc.Archive(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isBundleValidationError(err error) bool {
	switch err {
	case bndomain.ErrInvalidID,
		bndomain.ErrInvalidName,
		bndomain.ErrInvalidProduct,
		bndomain.ErrInvalidRatePlan,
		bndomain.ErrInvalidQuantity,
		bndomain.ErrInvalidDiscount:
		return true
	default:
		return false
	}
}
