package http

import (
	"fmt"

	catalogDto "anoa.com/jelajahpath/internal/modules/catalog/dto"
	catalogService "anoa.com/jelajahpath/internal/modules/catalog/service"
	"anoa.com/jelajahpath/pkg/apperror"
	"anoa.com/jelajahpath/pkg/response"
	"anoa.com/jelajahpath/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	service catalogService.CatalogService
}

func NewCatalogHandler(service catalogService.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) GetPaths(c *gin.Context) {
	paths, err := h.service.GetPublishedPaths(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"paths": paths})
}

func (h *CatalogHandler) GetPathByID(c *gin.Context) {
	var req catalogDto.GetPathRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		response.Error(c, fmt.Errorf("%w: invalid path id", apperror.ErrValidation))
		return
	}

	path, err := h.service.GetPathDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, path)
}
