package models

import (
	"encoding/json"
	"fmt"
)

// CaptionSet holds one caption per supported channel.
type CaptionSet struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Tiktok    string `json:"tiktok"`
	Whatsapp  string `json:"whatsapp"`
}

// ProductCopy is the validated per-product slice of the model output.
type ProductCopy struct {
	InferredName        string     `json:"inferredName"`
	InferredDescription string     `json:"inferredDescription"`
	EstimatedPrice      string     `json:"estimatedPrice"`
	PriceConfidence     string     `json:"priceConfidence"`
	Captions            CaptionSet `json:"captions"`
	Hashtags            []string   `json:"hashtags"`
}

// MasterCopy is the campaign-level caption/hashtag set.
type MasterCopy struct {
	Captions CaptionSet `json:"captions"`
	Hashtags []string   `json:"hashtags"`
}

// GenerationOutput is the full validated text-generation response.
type GenerationOutput struct {
	Products   []ProductCopy `json:"products"`
	MasterCopy MasterCopy    `json:"masterCopy"`
}

// Raw mirrors of the schema with pointer fields so that a missing key can be
// told apart from an empty value. Validation is all-or-nothing: one missing
// field or bad enum member rejects the whole payload.

type rawCaptionSet struct {
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
	Tiktok    *string `json:"tiktok"`
	Whatsapp  *string `json:"whatsapp"`
}

type rawProductCopy struct {
	InferredName        *string        `json:"inferredName"`
	InferredDescription *string        `json:"inferredDescription"`
	EstimatedPrice      *string        `json:"estimatedPrice"`
	PriceConfidence     *string        `json:"priceConfidence"`
	Captions            *rawCaptionSet `json:"captions"`
	Hashtags            []string       `json:"hashtags"`
}

type rawMasterCopy struct {
	Captions *rawCaptionSet `json:"captions"`
	Hashtags []string       `json:"hashtags"`
}

type rawGenerationOutput struct {
	Products   []rawProductCopy `json:"products"`
	MasterCopy *rawMasterCopy   `json:"masterCopy"`
}

// ParseGenerationOutput decodes and strictly validates a raw model response.
// Any missing field, wrong type or unexpected priceConfidence value fails the
// whole payload; there is no partial acceptance.
func ParseGenerationOutput(data []byte) (*GenerationOutput, error) {
	var raw rawGenerationOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode generation output: %w", err)
	}

	if raw.Products == nil {
		return nil, fmt.Errorf("generation output: missing products array")
	}
	if raw.MasterCopy == nil {
		return nil, fmt.Errorf("generation output: missing masterCopy")
	}

	out := &GenerationOutput{Products: make([]ProductCopy, 0, len(raw.Products))}

	for i, p := range raw.Products {
		cp, err := p.validate()
		if err != nil {
			return nil, fmt.Errorf("generation output: product %d: %w", i, err)
		}
		out.Products = append(out.Products, cp)
	}

	master, err := raw.MasterCopy.validate()
	if err != nil {
		return nil, fmt.Errorf("generation output: masterCopy: %w", err)
	}
	out.MasterCopy = master

	return out, nil
}

func (p rawProductCopy) validate() (ProductCopy, error) {
	if p.InferredName == nil {
		return ProductCopy{}, fmt.Errorf("missing inferredName")
	}
	if p.InferredDescription == nil {
		return ProductCopy{}, fmt.Errorf("missing inferredDescription")
	}
	if p.EstimatedPrice == nil {
		return ProductCopy{}, fmt.Errorf("missing estimatedPrice")
	}
	if p.PriceConfidence == nil {
		return ProductCopy{}, fmt.Errorf("missing priceConfidence")
	}
	switch *p.PriceConfidence {
	case "high", "medium", "low":
	default:
		return ProductCopy{}, fmt.Errorf("invalid priceConfidence %q", *p.PriceConfidence)
	}
	captions, err := p.Captions.validate()
	if err != nil {
		return ProductCopy{}, err
	}
	if p.Hashtags == nil {
		return ProductCopy{}, fmt.Errorf("missing hashtags")
	}

	return ProductCopy{
		InferredName:        *p.InferredName,
		InferredDescription: *p.InferredDescription,
		EstimatedPrice:      *p.EstimatedPrice,
		PriceConfidence:     *p.PriceConfidence,
		Captions:            captions,
		Hashtags:            p.Hashtags,
	}, nil
}

func (m rawMasterCopy) validate() (MasterCopy, error) {
	captions, err := m.Captions.validate()
	if err != nil {
		return MasterCopy{}, err
	}
	if m.Hashtags == nil {
		return MasterCopy{}, fmt.Errorf("missing hashtags")
	}
	return MasterCopy{Captions: captions, Hashtags: m.Hashtags}, nil
}

func (c *rawCaptionSet) validate() (CaptionSet, error) {
	if c == nil {
		return CaptionSet{}, fmt.Errorf("missing captions")
	}
	if c.Instagram == nil || c.Facebook == nil || c.Tiktok == nil || c.Whatsapp == nil {
		return CaptionSet{}, fmt.Errorf("captions must include instagram, facebook, tiktok and whatsapp")
	}
	return CaptionSet{
		Instagram: *c.Instagram,
		Facebook:  *c.Facebook,
		Tiktok:    *c.Tiktok,
		Whatsapp:  *c.Whatsapp,
	}, nil
}

// FallbackProductCopy returns a deterministic, schema-valid substitute for one
// product, used whenever the model call fails or its output does not validate.
// The pipeline never halts on a malformed response.
func FallbackProductCopy(productName string) ProductCopy {
	name := productName
	if name == "" {
		name = "this beautiful piece"
	}
	return ProductCopy{
		InferredName:        name,
		InferredDescription: "A stunning piece of jewelry, crafted with exceptional attention to detail.",
		EstimatedPrice:      "Contact us for pricing",
		PriceConfidence:     "low",
		Captions: CaptionSet{
			Instagram: fmt.Sprintf("✨ Elevate your style with %s. Each piece tells a story. Shop now through the link in bio! 💍", name),
			Facebook:  fmt.Sprintf("Discover %s — a beautiful addition to any collection. Handcrafted with care and designed to last a lifetime. Visit our store today!", name),
			Tiktok:    "POV: you just found your new favorite jewelry 💍✨ #jewelry #style",
			Whatsapp:  fmt.Sprintf("Hey! ✨ You have to check out %s. It's absolutely stunning! Let me know if you want more details. 💍", name),
		},
		Hashtags: []string{
			"jewelry", "luxuryjewelry", "jewelrylover", "accessories", "style",
			"fashion", "handmade", "gold", "silver", "rings",
			"necklace", "earrings", "jewels", "bling", "fashionista",
		},
	}
}

// EmptyMasterCopy is the master-level fallback. Unlike the per-product
// fallback it is deliberately blank: all channels empty, no hashtags.
func EmptyMasterCopy() MasterCopy {
	return MasterCopy{Hashtags: []string{}}
}
