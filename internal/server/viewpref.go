package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type setViewPreferencesRequest struct {
	ColumnOrder   *[]string `json:"column_order,omitempty"`
	HiddenColumns *[]string `json:"hidden_columns,omitempty"`
}

func (s *Server) GetViewPreferences(c *gin.Context) {
	feature := strings.TrimSpace(c.Param("feature"))
	if feature == "" {
		AbortWithError(c, newValidationError("feature", "invalid_feature", "invalid feature"))
		return
	}

	resp, err := s.viewPrefSvc.Get(c.Request.Context(), feature)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetViewPreferences(c *gin.Context) {
	feature := strings.TrimSpace(c.Param("feature"))
	if feature == "" {
		AbortWithError(c, newValidationError("feature", "invalid_feature", "invalid feature"))
		return
	}

	var req setViewPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	if req.ColumnOrder != nil {
		if err := s.viewPrefSvc.SetColumnOrder(ctx, feature, *req.ColumnOrder); err != nil {
			AbortWithError(c, err)
			return
		}
	}
	if req.HiddenColumns != nil {
		if err := s.viewPrefSvc.SetHiddenColumns(ctx, feature, *req.HiddenColumns); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	resp, err := s.viewPrefSvc.Get(ctx, feature)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
