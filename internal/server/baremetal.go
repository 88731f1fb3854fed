package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	bmdomain "github.com/rackworks/catalog/internal/baremetal/domain"
)

func (s *Server) CreateBareMetal(c *gin.Context) {
	var req bmdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bareMetalSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBareMetal(c *gin.Context) {
	var query struct {
		RegionID string `form:"region_id"`
		DiskType string `form:"disk_type"`
		Active   string `form:"active"`
		SortBy   string `form:"sort_by"`
		OrderBy  string `form:"order_by"`
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

	resp, err := s.bareMetalSvc.List(c.Request.Context(), bmdomain.ListRequest{
		RegionID: regionID,
		DiskType: strings.TrimSpace(query.DiskType),
		Active:   active,
		SortBy:   strings.TrimSpace(query.SortBy),
		OrderBy:  strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBareMetal(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.bareMetalSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBareMetal(c *gin.Context) {
	var req bmdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.bareMetalSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchiveBareMetal(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.bareMetalSvc.Archive(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isBareMetalValidationError(err error) bool {
	switch err {
	case bmdomain.ErrInvalidID,
		bmdomain.ErrInvalidName,
		bmdomain.ErrNegativeCapacity,
		bmdomain.ErrNegativePrice,
		bmdomain.ErrUnknownDiskType,
		bmdomain.ErrUnknownHypervisor:
		return true
	default:
		return false
	}
}
