package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"user_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type CampaignResponse struct {
	ID              string     `json:"campaign_id"`
	Title           string     `json:"title"`
	Theme           string     `json:"theme"`
	Tone            string     `json:"tone"`
	Status          string     `json:"status"`
	HeroImageURL    string     `json:"hero_image_url,omitempty"`
	HeroImagePrompt string     `json:"hero_image_prompt,omitempty"`
	MasterCaptions  CaptionSet `json:"master_captions"`
	MasterHashtags  []string   `json:"master_hashtags"`
	CreatedAt       time.Time  `json:"created_at"`
}

type CampaignSummary struct {
	ID           string    `json:"campaign_id"`
	Title        string    `json:"title"`
	Theme        string    `json:"theme"`
	Tone         string    `json:"tone"`
	Status       string    `json:"status"`
	ProductCount int       `json:"product_count"`
	CoverImage   string    `json:"cover_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CampaignListResponse struct {
	Campaigns []CampaignSummary `json:"campaigns"`
}

type ProductResponse struct {
	ID          string               `json:"product_id"`
	Name        string               `json:"name,omitempty"`
	Price       string               `json:"price,omitempty"`
	Description string               `json:"description,omitempty"`
	ImageURL    string               `json:"image_url"`
	SortOrder   int                  `json:"sort_order"`
	Generations []GenerationResponse `json:"generations,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

type GenerationResponse struct {
	ID              string     `json:"generation_id"`
	ProductID       string     `json:"product_id"`
	Captions        CaptionSet `json:"captions"`
	Hashtags        []string   `json:"hashtags"`
	EstimatedPrice  string     `json:"estimated_price,omitempty"`
	PriceConfidence string     `json:"price_confidence,omitempty"`
	VariationNumber int        `json:"variation_number"`
	PromoImageURL   string     `json:"promo_image_url,omitempty"`
	ImagePrompt     string     `json:"image_prompt,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type CampaignDetailResponse struct {
	Campaign CampaignResponse  `json:"campaign"`
	Products []ProductResponse `json:"products"`
}

type UploadResponse struct {
	CampaignID string            `json:"campaign_id"`
	Products   []ProductResponse `json:"products"`
}

type GenerateResponse struct {
	CampaignID  string                      `json:"campaign_id"`
	Status      string                      `json:"status"`
	Generations []ProductGenerationResponse `json:"generations"`
}

type ProductGenerationResponse struct {
	Product    ProductResponse    `json:"product"`
	Generation GenerationResponse `json:"generation"`
}

type RegenerateResponse struct {
	Generation GenerationResponse `json:"generation"`
}

type PromoImageResponse struct {
	GenerationID  string `json:"generation_id"`
	PromoImageURL string `json:"promo_image_url"`
	ImagePrompt   string `json:"image_prompt"`
}

// NewGenerationResponse converts a stored generation row to its API shape.
func NewGenerationResponse(g Generation) GenerationResponse {
	return GenerationResponse{
		ID:        g.ID.String(),
		ProductID: g.ProductID.String(),
		Captions: CaptionSet{
			Instagram: g.CaptionInstagram.String,
			Facebook:  g.CaptionFacebook.String,
			Tiktok:    g.CaptionTiktok.String,
			Whatsapp:  g.CaptionWhatsapp.String,
		},
		Hashtags:        g.Hashtags,
		EstimatedPrice:  g.EstimatedPrice.String,
		PriceConfidence: g.PriceConfidence.String,
		VariationNumber: g.VariationNumber,
		PromoImageURL:   g.PromoImageURL.String,
		ImagePrompt:     g.ImagePrompt.String,
		CreatedAt:       g.CreatedAt,
	}
}

// NewProductResponse converts a stored product row to its API shape.
func NewProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name.String,
		Price:       p.Price.String,
		Description: p.Description.String,
		ImageURL:    p.ImageURL,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
	}
}

// NewCampaignResponse converts a stored campaign row to its API shape.
func NewCampaignResponse(c Campaign) CampaignResponse {
	return CampaignResponse{
		ID:              c.ID.String(),
		Title:           c.Title,
		Theme:           c.Theme,
		Tone:            string(c.Tone),
		Status:          c.Status,
		HeroImageURL:    c.HeroImageURL.String,
		HeroImagePrompt: c.HeroImagePrompt.String,
		MasterCaptions: CaptionSet{
			Instagram: c.MasterCaptionInstagram.String,
			Facebook:  c.MasterCaptionFacebook.String,
			Tiktok:    c.MasterCaptionTiktok.String,
			Whatsapp:  c.MasterCaptionWhatsapp.String,
		},
		MasterHashtags: c.MasterHashtags,
		CreatedAt:      c.CreatedAt,
	}
}
