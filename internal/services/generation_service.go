// Package services holds the generation workflow: one orchestrated pass per
// campaign, per-product regeneration and promotional image attachment.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gemveil-backend/internal/models"
	"gemveil-backend/internal/prompt"
	"gemveil-backend/internal/storage"
)

const (
	campaignMaxTokens = 4000
	productMaxTokens  = 1500
)

// Database is the slice of the persistence layer the generation workflow
// needs. *database.Client satisfies it; tests substitute a fake.
type Database interface {
	GetCampaign(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	ListProductsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Product, error)
	UpdateCampaignStatus(ctx context.Context, id uuid.UUID, status string) error
	FinalizeCampaign(ctx context.Context, id uuid.UUID, final models.CampaignFinal) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	BackfillProduct(ctx context.Context, id uuid.UUID, name, description string) error
	CreateGeneration(ctx context.Context, productID uuid.UUID, cp models.ProductCopy) (*models.Generation, error)
	CountGenerations(ctx context.Context, productID uuid.UUID) (int, error)
	GetGeneration(ctx context.Context, id uuid.UUID) (*models.Generation, error)
	SetGenerationPromoImage(ctx context.Context, id uuid.UUID, imageURL, imagePrompt string) (*models.Generation, error)
}

// TextGenerator produces raw JSON marketing copy from an instruction block
// and product images.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, imageURLs []string, maxTokens int) (string, error)
}

// ImageGenerator renders one promotional image and returns its ephemeral URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, vivid bool) (string, error)
}

type GenerationService struct {
	db        Database
	textGen   TextGenerator
	imageGen  ImageGenerator
	store     storage.Store
	log       *zap.Logger
	aiTimeout time.Duration
	folder    string
}

func NewGenerationService(db Database, textGen TextGenerator, imageGen ImageGenerator, store storage.Store, log *zap.Logger, aiTimeout time.Duration, folder string) *GenerationService {
	if aiTimeout <= 0 {
		aiTimeout = 60 * time.Second
	}
	return &GenerationService{
		db:        db,
		textGen:   textGen,
		imageGen:  imageGen,
		store:     store,
		log:       log,
		aiTimeout: aiTimeout,
		folder:    folder,
	}
}

// GenerateCampaign runs one full content-generation pass: one text call
// covering every product, one generation row per product, an optional hero
// image, and the campaign moved to done. A failed or invalid text response
// downgrades to fallback content rather than failing the pass; a hero image
// failure is logged and skipped. Internal failures after the generating
// transition move the campaign to error so the status never lies.
func (s *GenerationService) GenerateCampaign(ctx context.Context, userID, campaignID uuid.UUID) ([]models.ProductGeneration, error) {
	campaign, err := s.db.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("%w: campaign %s", ErrNotFound, campaignID)
	}
	if campaign.UserID != userID {
		return nil, fmt.Errorf("%w: campaign %s", ErrNotFound, campaignID)
	}

	if campaign.Status != models.CampaignStatusDraft && campaign.Status != models.CampaignStatusError {
		return nil, fmt.Errorf("%w: campaign is %s", ErrInvalidRequest, campaign.Status)
	}

	products, err := s.db.ListProductsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: campaign has no products", ErrInvalidRequest)
	}

	if err := s.db.UpdateCampaignStatus(ctx, campaignID, models.CampaignStatusGenerating); err != nil {
		return nil, fmt.Errorf("mark campaign generating: %w", err)
	}

	out := s.campaignCopy(ctx, campaign, products)

	pairs := make([]models.ProductGeneration, len(products))
	g, gctx := errgroup.WithContext(ctx)
	for i, product := range products {
		g.Go(func() error {
			cp := models.FallbackProductCopy(product.Name.String)
			if i < len(out.Products) {
				cp = out.Products[i]
			}

			gen, err := s.db.CreateGeneration(gctx, product.ID, cp)
			if err != nil {
				return err
			}

			if product.Name.String == "" || product.Description.String == "" {
				if err := s.db.BackfillProduct(gctx, product.ID, cp.InferredName, cp.InferredDescription); err != nil {
					return err
				}
			}

			pairs[i] = models.ProductGeneration{Product: product, Generation: *gen}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.markError(ctx, campaignID)
		return nil, fmt.Errorf("persist generations: %w", err)
	}

	heroURL, heroPrompt := s.heroImage(ctx, campaign)

	if err := s.db.FinalizeCampaign(ctx, campaignID, models.CampaignFinal{
		HeroImageURL:    heroURL,
		HeroImagePrompt: heroPrompt,
		MasterCopy:      out.MasterCopy,
	}); err != nil {
		s.markError(ctx, campaignID)
		return nil, fmt.Errorf("finalize campaign: %w", err)
	}

	return pairs, nil
}

// RegenerateProduct produces exactly one additional variation for one
// product, optionally steered by a caller-supplied hint. Prior generations
// are never touched.
func (s *GenerationService) RegenerateProduct(ctx context.Context, userID, productID uuid.UUID, variationHint string) (*models.Generation, error) {
	product, err := s.db.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	campaign, err := s.db.GetCampaign(ctx, product.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("%w: campaign %s", ErrNotFound, product.CampaignID)
	}
	if campaign.UserID != userID {
		return nil, fmt.Errorf("%w: product %s", ErrForbidden, productID)
	}

	count, err := s.db.CountGenerations(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("count generations: %w", err)
	}
	nextVariation := count + 1

	var instruction string
	if variationHint != "" {
		instruction = fmt.Sprintf("\n\nVARIATION INSTRUCTION: %s. Make this variation distinctly different from previous ones.", variationHint)
	} else {
		instruction = fmt.Sprintf("\n\nVARIATION INSTRUCTION: Generate variation #%d. Use a fresh creative angle.", nextVariation)
	}

	input := prompt.ProductInput{
		Name:        product.Name.String,
		Price:       product.Price.String,
		Description: product.Description.String,
		ImageURL:    product.ImageURL,
	}
	fullPrompt := prompt.BuildGenerationPrompt([]prompt.ProductInput{input}, campaign.Tone, campaign.Theme) + instruction

	cp := s.productCopy(ctx, fullPrompt, product)

	gen, err := s.db.CreateGeneration(ctx, productID, cp)
	if err != nil {
		return nil, fmt.Errorf("persist generation: %w", err)
	}

	return gen, nil
}

// GeneratePromoImage renders a promotional image for one generation and
// attaches its durable URL. Unlike text generation there is no fallback
// image, so an upstream failure here is surfaced to the caller. Re-invoking
// replaces the previous image and prompt.
func (s *GenerationService) GeneratePromoImage(ctx context.Context, userID, generationID uuid.UUID) (*models.Generation, error) {
	gen, err := s.db.GetGeneration(ctx, generationID)
	if err != nil {
		return nil, fmt.Errorf("%w: generation %s", ErrNotFound, generationID)
	}

	product, err := s.db.GetProduct(ctx, gen.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, gen.ProductID)
	}

	campaign, err := s.db.GetCampaign(ctx, product.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("%w: campaign %s", ErrNotFound, product.CampaignID)
	}
	if campaign.UserID != userID {
		return nil, fmt.Errorf("%w: generation %s", ErrForbidden, generationID)
	}

	name := product.Name.String
	if name == "" {
		name = "jewelry piece"
	}
	imagePrompt := prompt.BuildImagePrompt(name, campaign.Tone, gen.CaptionInstagram.String, product.Description.String)

	cctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	imageURL, err := s.imageGen.GenerateImage(cctx, imagePrompt, campaign.Tone == models.ToneTrendy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	uploaded, err := s.store.UploadFromURL(ctx, imageURL, fmt.Sprintf("%s/promo/%s", s.folder, campaign.ID))
	if err != nil {
		return nil, fmt.Errorf("%w: store promo image: %v", ErrUpstream, err)
	}

	updated, err := s.db.SetGenerationPromoImage(ctx, generationID, uploaded.URL, imagePrompt)
	if err != nil {
		return nil, fmt.Errorf("persist promo image: %w", err)
	}

	return updated, nil
}

// campaignCopy runs the text-generation call for a whole campaign and
// strictly validates the result. Any failure on the way, call, parse or
// validation, substitutes the deterministic fallback: rich per-product
// content but a deliberately empty master copy.
func (s *GenerationService) campaignCopy(ctx context.Context, campaign *models.Campaign, products []models.Product) *models.GenerationOutput {
	inputs := make([]prompt.ProductInput, len(products))
	imageURLs := make([]string, len(products))
	for i, p := range products {
		inputs[i] = prompt.ProductInput{
			Name:        p.Name.String,
			Price:       p.Price.String,
			Description: p.Description.String,
			ImageURL:    p.ImageURL,
		}
		imageURLs[i] = p.ImageURL
	}

	fullPrompt := prompt.BuildGenerationPrompt(inputs, campaign.Tone, campaign.Theme)

	cctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	raw, err := s.textGen.GenerateJSON(cctx, fullPrompt, imageURLs, campaignMaxTokens)
	if err == nil {
		out, perr := models.ParseGenerationOutput([]byte(raw))
		if perr == nil {
			return out
		}
		err = perr
	}

	s.log.Warn("text generation failed, using fallback content",
		zap.String("campaign_id", campaign.ID.String()),
		zap.Error(err))

	out := &models.GenerationOutput{MasterCopy: models.EmptyMasterCopy()}
	for _, p := range products {
		out.Products = append(out.Products, models.FallbackProductCopy(p.Name.String))
	}
	return out
}

// productCopy runs a single-product text-generation call with fallback.
func (s *GenerationService) productCopy(ctx context.Context, fullPrompt string, product *models.Product) models.ProductCopy {
	cctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	raw, err := s.textGen.GenerateJSON(cctx, fullPrompt, []string{product.ImageURL}, productMaxTokens)
	if err == nil {
		out, perr := models.ParseGenerationOutput([]byte(raw))
		if perr == nil && len(out.Products) > 0 {
			return out.Products[0]
		}
		err = perr
		if err == nil {
			err = fmt.Errorf("generation output: empty products array")
		}
	}

	s.log.Warn("text generation failed, using fallback content",
		zap.String("product_id", product.ID.String()),
		zap.Error(err))

	return models.FallbackProductCopy(product.Name.String)
}

// heroImage attempts the campaign-level hero asset. This step is best effort:
// on any failure it returns empty fields and the pass continues without a
// hero image.
func (s *GenerationService) heroImage(ctx context.Context, campaign *models.Campaign) (url, heroPrompt string) {
	heroPrompt = prompt.BuildCampaignHeroImagePrompt(campaign.Theme, campaign.Tone)

	cctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	generated, err := s.imageGen.GenerateImage(cctx, heroPrompt, campaign.Tone == models.ToneTrendy)
	if err != nil {
		s.log.Warn("hero image generation failed, continuing without hero",
			zap.String("campaign_id", campaign.ID.String()),
			zap.Error(err))
		return "", ""
	}

	uploaded, err := s.store.UploadFromURL(ctx, generated, fmt.Sprintf("%s/campaigns/%s", s.folder, campaign.ID))
	if err != nil {
		s.log.Warn("hero image upload failed, continuing without hero",
			zap.String("campaign_id", campaign.ID.String()),
			zap.Error(err))
		return "", ""
	}

	return uploaded.URL, heroPrompt
}

// markError moves the campaign to the terminal error status after a failure
// past the generating transition. Runs detached from the request context so a
// cancelled request cannot leave the status lying.
func (s *GenerationService) markError(ctx context.Context, campaignID uuid.UUID) {
	if err := s.db.UpdateCampaignStatus(context.WithoutCancel(ctx), campaignID, models.CampaignStatusError); err != nil {
		s.log.Error("failed to mark campaign error",
			zap.String("campaign_id", campaignID.String()),
			zap.Error(err))
	}
}
