package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gemveil-backend/internal/middleware"
	"gemveil-backend/internal/models"
	"gemveil-backend/internal/services"
)

type GenerateHandler struct {
	service *services.GenerationService
	log     *zap.Logger
}

func NewGenerateHandler(service *services.GenerationService, log *zap.Logger) *GenerateHandler {
	return &GenerateHandler{service: service, log: log}
}

// Generate runs the full content-generation pass for a campaign.
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid campaign id"})
		return
	}

	pairs, err := h.service.GenerateCampaign(c.Request.Context(), userID, campaignID)
	if err != nil {
		h.respondError(c, "generation failed", err)
		return
	}

	resp := models.GenerateResponse{
		CampaignID: campaignID.String(),
		Status:     models.CampaignStatusDone,
	}
	for _, pair := range pairs {
		resp.Generations = append(resp.Generations, models.ProductGenerationResponse{
			Product:    models.NewProductResponse(pair.Product),
			Generation: models.NewGenerationResponse(pair.Generation),
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Regenerate produces one new variation for a single product.
func (h *GenerateHandler) Regenerate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	var req models.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Body is optional; no hint means a generic fresh angle.
		req.VariationHint = ""
	}

	gen, err := h.service.RegenerateProduct(c.Request.Context(), userID, productID, req.VariationHint)
	if err != nil {
		h.respondError(c, "regeneration failed", err)
		return
	}

	c.JSON(http.StatusOK, models.RegenerateResponse{Generation: models.NewGenerationResponse(*gen)})
}

// PromoImage attaches a promotional image to one generation.
func (h *GenerateHandler) PromoImage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	generationID, err := uuid.Parse(c.Param("generation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid generation id"})
		return
	}

	gen, err := h.service.GeneratePromoImage(c.Request.Context(), userID, generationID)
	if err != nil {
		h.respondError(c, "image generation failed", err)
		return
	}

	c.JSON(http.StatusOK, models.PromoImageResponse{
		GenerationID:  gen.ID.String(),
		PromoImageURL: gen.PromoImageURL.String,
		ImagePrompt:   gen.ImagePrompt.String,
	})
}

// respondError maps service failure kinds onto HTTP responses.
func (h *GenerateHandler) respondError(c *gin.Context, fallbackMsg string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found", Message: err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "forbidden", Message: err.Error()})
	case errors.Is(err, services.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
	case errors.Is(err, services.ErrUpstream):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "upstream failure", Message: err.Error()})
	default:
		h.log.Error(fallbackMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fallbackMsg, Message: err.Error()})
	}
}
