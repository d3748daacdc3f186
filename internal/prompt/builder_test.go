package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gemveil-backend/internal/models"
	"gemveil-backend/internal/prompt"
)

func sampleProducts() []prompt.ProductInput {
	return []prompt.ProductInput{
		{Name: "Aurora Ring", Price: "$120", Description: "18k gold band", ImageURL: "https://img.example/1.jpg"},
		{ImageURL: "https://img.example/2.jpg"},
	}
}

func TestBuildGenerationPrompt_Deterministic(t *testing.T) {
	a := prompt.BuildGenerationPrompt(sampleProducts(), models.ToneLuxury, "vintage gold")
	b := prompt.BuildGenerationPrompt(sampleProducts(), models.ToneLuxury, "vintage gold")
	assert.Equal(t, a, b)
}

func TestBuildGenerationPrompt_CampaignContext(t *testing.T) {
	p := prompt.BuildGenerationPrompt(sampleProducts(), models.ToneTrendy, "summer festival")

	assert.Contains(t, p, "Theme: summer festival")
	assert.Contains(t, p, "Tone: Trendy")
	assert.Contains(t, p, "Gen-Z lifestyle brand voice")
	assert.Contains(t, p, "Products count: 2")
}

func TestBuildGenerationPrompt_EnumeratesProductsInOrder(t *testing.T) {
	p := prompt.BuildGenerationPrompt(sampleProducts(), models.ToneLuxury, "vintage gold")

	first := strings.Index(p, "Product 1:")
	second := strings.Index(p, "Product 2:")
	assert.Greater(t, first, -1)
	assert.Greater(t, second, first)
	assert.Contains(t, p, "Name: Aurora Ring")
	assert.Contains(t, p, "Price: $120")
}

func TestBuildGenerationPrompt_UnknownPlaceholders(t *testing.T) {
	p := prompt.BuildGenerationPrompt([]prompt.ProductInput{{ImageURL: "https://img.example/x.jpg"}}, models.ToneMinimal, "minimal")

	assert.Contains(t, p, "Name: UNKNOWN - infer from image")
	assert.Contains(t, p, "Price: UNKNOWN - estimate from image quality and style")
	assert.Contains(t, p, "Description: UNKNOWN - describe from image")
}

func TestBuildGenerationPrompt_ResponseContract(t *testing.T) {
	p := prompt.BuildGenerationPrompt(sampleProducts(), models.ToneBold, "statement pieces")

	assert.Contains(t, p, "strict JSON")
	assert.Contains(t, p, `"priceConfidence": "high|medium|low"`)
	assert.Contains(t, p, "max 150 chars, hook-first")
	assert.Contains(t, p, "includes price mention")
	assert.Contains(t, p, "15-20 tags")
	assert.Contains(t, p, "no # prefix")
	assert.Contains(t, p, `"masterCopy"`)
}

func TestBuildImagePrompt(t *testing.T) {
	p := prompt.BuildImagePrompt("Aurora Ring", models.ToneLuxury, "Shine bright ✨", "18k gold band")

	assert.Contains(t, p, `"Aurora Ring"`)
	assert.Contains(t, p, "Product details: 18k gold band.")
	assert.Contains(t, p, "Vogue magazine aesthetic")
	assert.Contains(t, p, "no text or watermarks")
}

func TestBuildImagePrompt_OmitsEmptyOptionalFields(t *testing.T) {
	p := prompt.BuildImagePrompt("Aurora Ring", models.ToneMinimal, "", "")

	assert.NotContains(t, p, "Product details")
	assert.NotContains(t, p, "Marketing angle")
	assert.Contains(t, p, "Apple product photography style")
}

func TestBuildImagePrompt_ToneStylesDistinct(t *testing.T) {
	tones := []models.Tone{models.ToneLuxury, models.ToneTrendy, models.ToneMinimal, models.ToneBold}

	seen := make(map[string]bool)
	for _, tone := range tones {
		p := prompt.BuildImagePrompt("Ring", tone, "", "")
		assert.False(t, seen[p], "style for tone %s should be unique", tone)
		seen[p] = true
	}
}

func TestBuildCampaignHeroImagePrompt(t *testing.T) {
	p := prompt.BuildCampaignHeroImagePrompt("vintage gold", models.ToneBold)

	assert.Contains(t, p, `"vintage gold"`)
	assert.Contains(t, p, "dramatic chiaroscuro lighting")
	assert.Contains(t, p, "multiple elegant jewelry pieces")
	assert.Contains(t, p, "no text or watermarks")
}
