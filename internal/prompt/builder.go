// Package prompt builds the natural-language instructions sent to the text
// and image generation models. Everything here is pure: same inputs, same
// output string, no I/O.
package prompt

import (
	"fmt"
	"strings"

	"gemveil-backend/internal/models"
)

// ProductInput is the subset of a product the prompt needs. Empty optional
// fields are rendered as explicit "UNKNOWN" placeholders so the model infers
// them from the attached image.
type ProductInput struct {
	Name        string
	Price       string
	Description string
	ImageURL    string
}

var toneDescriptions = map[models.Tone]string{
	models.ToneLuxury:  "sophisticated, elegant, aspirational, high-end brand voice",
	models.ToneTrendy:  "fun, youthful, energetic, Gen-Z lifestyle brand voice",
	models.ToneMinimal: "clean, simple, understated, Scandinavian minimalist voice",
	models.ToneBold:    "powerful, dramatic, statement-making, confident brand voice",
}

var visualStyles = map[models.Tone]string{
	models.ToneLuxury:  "soft editorial lighting, gold and ivory background, luxury velvet and marble surfaces, champagne and warm tones, sophisticated depth of field, Vogue magazine aesthetic",
	models.ToneTrendy:  "vibrant colorful gradient background, trendy lifestyle setting, bright and fun colors, social-media-viral aesthetic, Gen-Z color palette, energetic composition",
	models.ToneMinimal: "pure white studio background, clean Scandinavian minimalism, negative space, monochromatic neutral tones, precise product placement, Apple product photography style",
	models.ToneBold:    "dramatic chiaroscuro lighting, dark jewel-toned background, deep contrast, powerful composition, fashion-forward editorial, high-impact visual statement",
}

// BuildGenerationPrompt composes one instruction block covering every product
// in the campaign, including the strict JSON response contract the validator
// expects back.
func BuildGenerationPrompt(products []ProductInput, tone models.Tone, theme string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert jewelry marketing copywriter with deep knowledge of social media algorithms.\n\n")
	fmt.Fprintf(&b, "CAMPAIGN CONTEXT:\n- Theme: %s\n- Tone: %s (%s)\n- Products count: %d\n\n", theme, tone, toneDescriptions[tone], len(products))
	b.WriteString("TASK: For each product image provided (in order), generate complete marketing content.\n\n")

	for i, p := range products {
		fmt.Fprintf(&b, "Product %d:\n- Name: %s\n- Price: %s\n- Description: %s\n\n",
			i+1,
			orUnknown(p.Name, "UNKNOWN - infer from image"),
			orUnknown(p.Price, "UNKNOWN - estimate from image quality and style"),
			orUnknown(p.Description, "UNKNOWN - describe from image"),
		)
	}

	b.WriteString(`RESPONSE FORMAT (strict JSON, no markdown, no explanation):
{
  "products": [
    {
      "inferredName": "string (if name was unknown, provide best guess; else repeat given name)",
      "inferredDescription": "string (2-3 sentences about the product)",
      "estimatedPrice": "string (e.g. '$89' or '$120-$150')",
      "priceConfidence": "high|medium|low",
      "captions": {
        "instagram": "string (1-3 sentences, emoji-rich, lifestyle-focused, ends with soft CTA)",
        "facebook": "string (2-4 sentences, story-driven, community-focused, includes price mention)",
        "tiktok": "string (punchy, trend-aware, very short, max 150 chars, hook-first)",
        "whatsapp": "string (conversational, persuasive, highly shareable, natural sounding for direct messages/status, emoji-rich)"
      },
      "hashtags": ["tag1", "tag2", ... (15-20 tags, mix of niche and trending, no # prefix)]
    }
  ],
  "masterCopy": {
    "captions": {
      "instagram": "string", "facebook": "string", "tiktok": "string", "whatsapp": "string"
    },
    "hashtags": ["tag1", "tag2", ...]
  }
}`)

	return b.String()
}

// BuildImagePrompt composes a single image-generation instruction for one
// product's promotional shot.
func BuildImagePrompt(productName string, tone models.Tone, caption, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A stunning professional jewelry product advertisement photograph. The jewelry piece shown is: %q. ", productName)
	if description != "" {
		fmt.Fprintf(&b, "Product details: %s. ", description)
	}
	if caption != "" {
		fmt.Fprintf(&b, "Marketing angle: %s. ", caption)
	}
	fmt.Fprintf(&b, "Visual style: %s. ", visualStyles[tone])
	b.WriteString("The image should be optimized for social media marketing, with the jewelry as the hero element. Shot in the style of a luxury fashion brand campaign. Ultra high resolution, photorealistic, no text or watermarks.")
	return b.String()
}

// BuildCampaignHeroImagePrompt composes the instruction for the one
// poster-style hero asset representing the whole collection.
func BuildCampaignHeroImagePrompt(theme string, tone models.Tone) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A stunning professional hero campaign image representing a jewelry collection. The theme of the campaign is: %q. ", theme)
	fmt.Fprintf(&b, "Visual style: %s. ", visualStyles[tone])
	b.WriteString("The image should conceptually feature multiple elegant jewelry pieces beautifully arranged together to form a cohesive promotional poster or hero asset. Shot in the style of a luxury fashion brand campaign. Ultra high resolution, photorealistic, visually captivating, no text or watermarks.")
	return b.String()
}

func orUnknown(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
