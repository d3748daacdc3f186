package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gemveil-backend/internal/database"
	"gemveil-backend/internal/middleware"
	"gemveil-backend/internal/models"
	"gemveil-backend/internal/storage"
)

const maxCampaignProducts = 20

type CampaignsHandler struct {
	dbClient *database.Client
	store    storage.Store
	folder   string
	log      *zap.Logger
}

func NewCampaignsHandler(dbClient *database.Client, store storage.Store, folder string, log *zap.Logger) *CampaignsHandler {
	return &CampaignsHandler{
		dbClient: dbClient,
		store:    store,
		folder:   folder,
		log:      log,
	}
}

// CreateCampaign accepts a multipart form with 1-20 product images plus
// optional per-product name/price/description, uploads each image to the
// media store and creates the campaign in draft with its products.
func (h *CampaignsHandler) CreateCampaign(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	form := c.Request.MultipartForm
	if form == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "multipart form required"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = "Untitled Campaign"
	}
	theme := c.PostForm("theme")
	if theme == "" {
		theme = "jewelry"
	}
	tone := c.PostForm("tone")
	if tone == "" {
		tone = string(models.ToneLuxury)
	}
	if !models.ValidTone(tone) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid tone", Message: "tone must be one of Luxury, Trendy, Minimal, Bold"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 || len(files) > maxCampaignProducts {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("upload 1-%d images", maxCampaignProducts)})
		return
	}

	names := form.Value["names"]
	prices := form.Value["prices"]
	descriptions := form.Value["descriptions"]

	campaign, err := h.dbClient.CreateCampaign(c.Request.Context(), userID, title, theme, models.Tone(tone))
	if err != nil {
		h.log.Error("create campaign failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create campaign", Message: err.Error()})
		return
	}

	// Upload and insert all products in parallel; sort order keeps the
	// original position regardless of completion order.
	products := make([]models.Product, len(files))
	g, gctx := errgroup.WithContext(c.Request.Context())
	for i, fh := range files {
		g.Go(func() error {
			f, err := fh.Open()
			if err != nil {
				return fmt.Errorf("open %s: %w", fh.Filename, err)
			}
			defer f.Close()

			uploaded, err := h.store.Upload(gctx, f, fh.Header.Get("Content-Type"), fmt.Sprintf("%s/%s", h.folder, campaign.ID))
			if err != nil {
				return fmt.Errorf("upload %s: %w", fh.Filename, err)
			}

			product, err := h.dbClient.CreateProduct(gctx, &models.Product{
				CampaignID:      campaign.ID,
				Name:            nullString(valueAt(names, i)),
				Price:           nullString(valueAt(prices, i)),
				Description:     nullString(valueAt(descriptions, i)),
				ImageURL:        uploaded.URL,
				StoragePublicID: nullString(uploaded.PublicID),
				SortOrder:       i,
			})
			if err != nil {
				return err
			}

			products[i] = *product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.log.Error("campaign upload failed", zap.String("campaign_id", campaign.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "upload failed", Message: err.Error()})
		return
	}

	resp := models.UploadResponse{CampaignID: campaign.ID.String()}
	for _, p := range products {
		resp.Products = append(resp.Products, models.NewProductResponse(p))
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CampaignsHandler) ListCampaigns(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	campaigns, err := h.dbClient.ListCampaigns(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list campaigns", Message: err.Error()})
		return
	}

	summaries := make([]models.CampaignSummary, 0, len(campaigns))
	for _, cam := range campaigns {
		products, err := h.dbClient.ListProductsByCampaign(c.Request.Context(), cam.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list campaigns", Message: err.Error()})
			return
		}

		summary := models.CampaignSummary{
			ID:           cam.ID.String(),
			Title:        cam.Title,
			Theme:        cam.Theme,
			Tone:         string(cam.Tone),
			Status:       cam.Status,
			ProductCount: len(products),
			CreatedAt:    cam.CreatedAt,
		}
		if len(products) > 0 {
			summary.CoverImage = products[0].ImageURL
		}
		summaries = append(summaries, summary)
	}

	c.JSON(http.StatusOK, models.CampaignListResponse{Campaigns: summaries})
}

func (h *CampaignsHandler) GetCampaign(c *gin.Context) {
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

	campaign, err := h.dbClient.GetCampaign(c.Request.Context(), campaignID)
	if err != nil || campaign.UserID != userID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "campaign not found"})
		return
	}

	products, err := h.dbClient.ListProductsByCampaign(c.Request.Context(), campaignID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load campaign", Message: err.Error()})
		return
	}

	resp := models.CampaignDetailResponse{Campaign: models.NewCampaignResponse(*campaign)}
	for _, p := range products {
		generations, err := h.dbClient.ListGenerationsByProduct(c.Request.Context(), p.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load campaign", Message: err.Error()})
			return
		}

		pr := models.NewProductResponse(p)
		for _, g := range generations {
			pr.Generations = append(pr.Generations, models.NewGenerationResponse(g))
		}
		resp.Products = append(resp.Products, pr)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CampaignsHandler) DeleteCampaign(c *gin.Context) {
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

	campaign, err := h.dbClient.GetCampaign(c.Request.Context(), campaignID)
	if err != nil || campaign.UserID != userID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "campaign not found"})
		return
	}

	if err := h.dbClient.DeleteCampaign(c.Request.Context(), campaignID, userID); err != nil {
		h.log.Error("delete campaign failed", zap.String("campaign_id", campaignID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete campaign", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "campaign deleted"})
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
