// Package database provides the Postgres persistence layer: a thin client
// with hand-written SQL over database/sql, plus the embedded migration
// runner.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gemveil-backend/internal/models"
)

type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// ==========================================================================
// Users
// ==========================================================================

func (c *Client) CreateUser(ctx context.Context, email, passwordHash, name string) (*models.User, error) {
	var u models.User
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, name, created_at
	`, email, passwordHash, name).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := c.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// ==========================================================================
// Campaigns
// ==========================================================================

const campaignColumns = `id, user_id, title, theme, tone, status,
	hero_image_url, hero_image_prompt,
	master_caption_instagram, master_caption_facebook,
	master_caption_tiktok, master_caption_whatsapp,
	master_hashtags, created_at`

func (c *Client) scanCampaign(row *sql.Row) (*models.Campaign, error) {
	var cam models.Campaign
	var hashtags []byte
	err := row.Scan(
		&cam.ID, &cam.UserID, &cam.Title, &cam.Theme, &cam.Tone, &cam.Status,
		&cam.HeroImageURL, &cam.HeroImagePrompt,
		&cam.MasterCaptionInstagram, &cam.MasterCaptionFacebook,
		&cam.MasterCaptionTiktok, &cam.MasterCaptionWhatsapp,
		&hashtags, &cam.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hashtags, &cam.MasterHashtags); err != nil {
		return nil, fmt.Errorf("failed to decode master hashtags: %w", err)
	}
	return &cam, nil
}

func (c *Client) CreateCampaign(ctx context.Context, userID uuid.UUID, title, theme string, tone models.Tone) (*models.Campaign, error) {
	row := c.db.QueryRowContext(ctx, `
		INSERT INTO campaigns (user_id, title, theme, tone, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+campaignColumns+`
	`, userID, title, theme, tone, models.CampaignStatusDraft)

	cam, err := c.scanCampaign(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return cam, nil
}

func (c *Client) GetCampaign(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE id = $1
	`, id)

	cam, err := c.scanCampaign(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return cam, nil
}

func (c *Client) ListCampaigns(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var cam models.Campaign
		var hashtags []byte
		err := rows.Scan(
			&cam.ID, &cam.UserID, &cam.Title, &cam.Theme, &cam.Tone, &cam.Status,
			&cam.HeroImageURL, &cam.HeroImagePrompt,
			&cam.MasterCaptionInstagram, &cam.MasterCaptionFacebook,
			&cam.MasterCaptionTiktok, &cam.MasterCaptionWhatsapp,
			&hashtags, &cam.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		if err := json.Unmarshal(hashtags, &cam.MasterHashtags); err != nil {
			return nil, fmt.Errorf("failed to decode master hashtags: %w", err)
		}
		campaigns = append(campaigns, cam)
	}

	return campaigns, rows.Err()
}

func (c *Client) UpdateCampaignStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE campaigns
		SET status = $1
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update campaign status: %w", err)
	}
	return nil
}

// FinalizeCampaign marks the campaign done and persists the master copy and
// hero image fields gathered during the generation pass. Empty hero fields
// are stored as NULL.
func (c *Client) FinalizeCampaign(ctx context.Context, id uuid.UUID, final models.CampaignFinal) error {
	hashtags, err := json.Marshal(final.MasterCopy.Hashtags)
	if err != nil {
		return fmt.Errorf("failed to encode master hashtags: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		UPDATE campaigns
		SET status = $1,
		    hero_image_url = NULLIF($2, ''),
		    hero_image_prompt = NULLIF($3, ''),
		    master_caption_instagram = $4,
		    master_caption_facebook = $5,
		    master_caption_tiktok = $6,
		    master_caption_whatsapp = $7,
		    master_hashtags = $8
		WHERE id = $9
	`, models.CampaignStatusDone,
		final.HeroImageURL, final.HeroImagePrompt,
		final.MasterCopy.Captions.Instagram, final.MasterCopy.Captions.Facebook,
		final.MasterCopy.Captions.Tiktok, final.MasterCopy.Captions.Whatsapp,
		hashtags, id)
	if err != nil {
		return fmt.Errorf("failed to finalize campaign: %w", err)
	}
	return nil
}

func (c *Client) DeleteCampaign(ctx context.Context, id, userID uuid.UUID) error {
	// Products and generations go with it via ON DELETE CASCADE.
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM campaigns
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// ==========================================================================
// Products
// ==========================================================================

const productColumns = `id, campaign_id, name, price, description, image_url,
	storage_public_id, sort_order, created_at`

func (c *Client) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	var created models.Product
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO products (campaign_id, name, price, description, image_url, storage_public_id, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns+`
	`, p.CampaignID, p.Name, p.Price, p.Description, p.ImageURL, p.StoragePublicID, p.SortOrder).Scan(
		&created.ID, &created.CampaignID, &created.Name, &created.Price, &created.Description,
		&created.ImageURL, &created.StoragePublicID, &created.SortOrder, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := c.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.CampaignID, &p.Name, &p.Price, &p.Description,
		&p.ImageURL, &p.StoragePublicID, &p.SortOrder, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (c *Client) ListProductsByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.Product, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE campaign_id = $1
		ORDER BY sort_order
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.CampaignID, &p.Name, &p.Price, &p.Description,
			&p.ImageURL, &p.StoragePublicID, &p.SortOrder, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// BackfillProduct fills in the product's name and description from inferred
// values, only where the user-supplied value was blank.
func (c *Client) BackfillProduct(ctx context.Context, id uuid.UUID, name, description string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE products
		SET name = COALESCE(NULLIF(name, ''), NULLIF($2, '')),
		    description = COALESCE(NULLIF(description, ''), NULLIF($3, ''))
		WHERE id = $1
	`, id, name, description)
	if err != nil {
		return fmt.Errorf("failed to backfill product: %w", err)
	}
	return nil
}

// ==========================================================================
// Generations
// ==========================================================================

const generationColumns = `id, product_id, caption_instagram, caption_facebook,
	caption_tiktok, caption_whatsapp, hashtags, estimated_price,
	price_confidence, variation_number, promo_image_url, image_prompt, created_at`

func scanGeneration(scan func(dest ...any) error) (*models.Generation, error) {
	var g models.Generation
	var hashtags []byte
	err := scan(
		&g.ID, &g.ProductID, &g.CaptionInstagram, &g.CaptionFacebook,
		&g.CaptionTiktok, &g.CaptionWhatsapp, &hashtags, &g.EstimatedPrice,
		&g.PriceConfidence, &g.VariationNumber, &g.PromoImageURL, &g.ImagePrompt, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hashtags, &g.Hashtags); err != nil {
		return nil, fmt.Errorf("failed to decode hashtags: %w", err)
	}
	return &g, nil
}

// CreateGeneration inserts one generation, allocating the next variation
// number for the product inside the insert itself. A concurrent insert that
// lands on the same number trips the unique index; the losing statement is
// retried and recomputes.
func (c *Client) CreateGeneration(ctx context.Context, productID uuid.UUID, cp models.ProductCopy) (*models.Generation, error) {
	hashtags, err := json.Marshal(cp.Hashtags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode hashtags: %w", err)
	}

	const attempts = 3
	for i := 0; ; i++ {
		row := c.db.QueryRowContext(ctx, `
			INSERT INTO generations (product_id, caption_instagram, caption_facebook,
				caption_tiktok, caption_whatsapp, hashtags, estimated_price,
				price_confidence, variation_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
				(SELECT COALESCE(MAX(variation_number), 0) + 1 FROM generations WHERE product_id = $1))
			RETURNING `+generationColumns+`
		`, productID,
			cp.Captions.Instagram, cp.Captions.Facebook,
			cp.Captions.Tiktok, cp.Captions.Whatsapp,
			hashtags, cp.EstimatedPrice, cp.PriceConfidence)

		g, err := scanGeneration(row.Scan)
		if err == nil {
			return g, nil
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && i < attempts-1 {
			continue
		}
		return nil, fmt.Errorf("failed to create generation: %w", err)
	}
}

// CountGenerations returns how many generations already exist for a product.
// Used to phrase the variation instruction; the authoritative variation
// number is allocated inside CreateGeneration.
func (c *Client) CountGenerations(ctx context.Context, productID uuid.UUID) (int, error) {
	var count int
	err := c.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM generations WHERE product_id = $1
	`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}
	return count, nil
}

func (c *Client) GetGeneration(ctx context.Context, id uuid.UUID) (*models.Generation, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT `+generationColumns+`
		FROM generations
		WHERE id = $1
	`, id)

	g, err := scanGeneration(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return g, nil
}

func (c *Client) ListGenerationsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Generation, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+generationColumns+`
		FROM generations
		WHERE product_id = $1
		ORDER BY variation_number
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var generations []models.Generation
	for rows.Next() {
		g, err := scanGeneration(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		generations = append(generations, *g)
	}

	return generations, rows.Err()
}

// SetGenerationPromoImage overwrites the promotional image URL and the prompt
// that produced it. Re-invocation replaces the previous pair.
func (c *Client) SetGenerationPromoImage(ctx context.Context, id uuid.UUID, imageURL, imagePrompt string) (*models.Generation, error) {
	row := c.db.QueryRowContext(ctx, `
		UPDATE generations
		SET promo_image_url = $1, image_prompt = $2
		WHERE id = $3
		RETURNING `+generationColumns+`
	`, imageURL, imagePrompt, id)

	g, err := scanGeneration(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to update generation promo image: %w", err)
	}
	return g, nil
}
