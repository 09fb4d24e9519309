package http

import (
	searchService "anoa.com/jelajahpath/internal/modules/search/service"
	"anoa.com/jelajahpath/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service searchService.PathSearchService
}

func NewSearchHandler(service searchService.PathSearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) GetSearchToken(c *gin.Context) {
	token, err := h.service.GenerateSearchToken()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"token": token})
}
