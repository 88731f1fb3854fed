package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	rpdomain "github.com/rackworks/catalog/internal/rateplan/domain"
)

func (s *Server) CreateRatePlan(c *gin.Context) {
	var req rpdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ratePlanSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRatePlans(c *gin.Context) {
	var query struct {
		ProductID string `form:"product_id"`
		RegionID  string `form:"region_id"`
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
	regionID, err := parseOptionalInt64(query.RegionID)
	if err != nil {
		AbortWithError(c, newValidationError("region_id", "invalid_region_id", "invalid region id"))
		return
	}

	resp, err := s.ratePlanSvc.List(c.Request.Context(), rpdomain.ListRequest{
		ProductID: strings.TrimSpace(query.ProductID),
		RegionID:  regionID,
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

func (s *Server) GetRatePlan(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.ratePlanSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRatePlan(c *gin.Context) {
	var req rpdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.ratePlanSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchiveRatePlan(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.ratePlanSvc.Archive(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isRatePlanValidationError(err error) bool {
	switch err {
	case rpdomain.ErrInvalidID,
		rpdomain.ErrInvalidName,
		rpdomain.ErrInvalidProduct,
		rpdomain.ErrNegativePrice,
		rpdomain.ErrInvalidCurrency:
		return true
	default:
		return false
	}
}
