package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	dhdomain "github.com/rackworks/catalog/internal/dedicatedhost/domain"
)

func (s *Server) CreateDedicatedHost(c *gin.Context) {
	var req dhdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.dedicatedHostSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDedicatedHosts(c *gin.Context) {
	var query struct {
		RegionID string `form:"region_id"`
		HostType string `form:"host_type"`
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

	resp, err := s.dedicatedHostSvc.List(c.Request.Context(), dhdomain.ListRequest{
		RegionID: regionID,
		HostType: strings.TrimSpace(query.HostType),
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

func (s *Server) GetDedicatedHost(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.dedicatedHostSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateDedicatedHost(c *gin.Context) {
	var req dhdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.dedicatedHostSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchiveDedicatedHost(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.dedicatedHostSvc.Archive(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isDedicatedHostValidationError(err error) bool {
	switch err {
	case dhdomain.ErrInvalidID,
		dhdomain.ErrInvalidName,
		dhdomain.ErrInvalidHostType,
		dhdomain.ErrNegativeCapacity,
		dhdomain.ErrUnknownHypervisor:
		return true
	default:
		return false
	}
}
