package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID              uuid.UUID
	CampaignID      uuid.UUID
	Name            sql.NullString
	Price           sql.NullString
	Description     sql.NullString
	ImageURL        string
	StoragePublicID sql.NullString
	SortOrder       int
	CreatedAt       time.Time
}

type Generation struct {
	ID               uuid.UUID
	ProductID        uuid.UUID
	CaptionInstagram sql.NullString
	CaptionFacebook  sql.NullString
	CaptionTiktok    sql.NullString
	CaptionWhatsapp  sql.NullString
	Hashtags         []string
	EstimatedPrice   sql.NullString
	PriceConfidence  sql.NullString
	VariationNumber  int
	PromoImageURL    sql.NullString
	ImagePrompt      sql.NullString
	CreatedAt        time.Time
}

// ProductGeneration pairs a product with one generation created for it in
// the same pass.
type ProductGeneration struct {
	Product    Product
	Generation Generation
}
