package http

import (
	"fmt"

	progressDto "anoa.com/jelajahpath/internal/modules/progress/dto"
	progressService "anoa.com/jelajahpath/internal/modules/progress/service"
	"anoa.com/jelajahpath/pkg/apperror"
	"anoa.com/jelajahpath/pkg/response"
	"anoa.com/jelajahpath/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	service progressService.ProgressService
}

func NewProgressHandler(service progressService.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) RecordVisit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req progressDto.RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}

	result, err := h.service.RecordFix(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (h *ProgressHandler) GetPathProgress(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req progressDto.GetProgressRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}

	pathID, err := uuid.Parse(req.PathID)
	if err != nil {
		response.Error(c, fmt.Errorf("%w: invalid path id", apperror.ErrValidation))
		return
	}

	progress, err := h.service.GetPathProgress(c.Request.Context(), userID, pathID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, progress)
}
