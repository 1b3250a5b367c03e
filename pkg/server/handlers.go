package server

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utsavratan/gestureflow/pkg/domain"
	"github.com/utsavratan/gestureflow/pkg/errors"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a ProgressionError to an HTTP status with a coded body.
func (s *Server) writeError(c *gin.Context, err error) {
	var progErr *errors.ProgressionError
	if !stderrors.As(err, &progErr) {
		s.logger.Error("unhandled error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Code:    errors.ErrCodeDatabaseError,
			Message: "internal error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch progErr.Code {
	case errors.ErrCodeInvalidEvent, errors.ErrCodeValidationFailed, errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeAchievementNotFound, errors.ErrCodeLevelStateNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "code", progErr.Code, "error", err)
	}

	c.JSON(status, errorResponse{
		Code:    progErr.Code,
		Message: progErr.Message,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.healthCheck != nil {
		if err := s.healthCheck(); err != nil {
			s.logger.Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePostActivity(c *gin.Context) {
	var event domain.ActivityEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    errors.ErrCodeInvalidInput,
			Message: "malformed request body",
		})
		return
	}

	summary, err := s.engine.ProcessActivity(c.Request.Context(), &event)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleGetAchievement(c *gin.Context) {
	def, err := s.engine.GetAchievement(c.Param("achievementID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, def)
}

func (s *Server) handleGetAchievements(c *gin.Context) {
	statuses, err := s.engine.GetAchievements(c.Request.Context(), c.Param("userID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"achievements": statuses})
}

func (s *Server) handleGetLevel(c *gin.Context) {
	state, err := s.engine.GetLevelState(c.Request.Context(), c.Param("userID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

type friendCountRequest struct {
	Count *int `json:"count" binding:"required"`
}

func (s *Server) handlePutFriendCount(c *gin.Context) {
	var req friendCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    errors.ErrCodeInvalidInput,
			Message: "malformed request body",
		})
		return
	}

	earned, err := s.engine.RecordFriendCount(c.Request.Context(), c.Param("userID"), *req.Count)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"new_achievements": earned})
}
