package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Tone is one of the four fixed brand-voice presets. It controls both the
// copywriting register and the visual style used for generated imagery.
type Tone string

const (
	ToneLuxury  Tone = "Luxury"
	ToneTrendy  Tone = "Trendy"
	ToneMinimal Tone = "Minimal"
	ToneBold    Tone = "Bold"
)

// ValidTone reports whether s is one of the four supported tones.
func ValidTone(s string) bool {
	switch Tone(s) {
	case ToneLuxury, ToneTrendy, ToneMinimal, ToneBold:
		return true
	}
	return false
}

// Campaign status values. Transitions only move forward: draft -> generating
// -> done. Error is a terminal state reachable from generating; a campaign in
// draft or error may be (re)submitted for generation.
const (
	CampaignStatusDraft      = "draft"
	CampaignStatusGenerating = "generating"
	CampaignStatusDone       = "done"
	CampaignStatusError      = "error"
)

type Campaign struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Title                  string
	Theme                  string
	Tone                   Tone
	Status                 string
	HeroImageURL           sql.NullString
	HeroImagePrompt        sql.NullString
	MasterCaptionInstagram sql.NullString
	MasterCaptionFacebook  sql.NullString
	MasterCaptionTiktok    sql.NullString
	MasterCaptionWhatsapp  sql.NullString
	MasterHashtags         []string
	CreatedAt              time.Time
}

// CampaignFinal carries the fields persisted when a generation pass
// finishes and the campaign moves to done.
type CampaignFinal struct {
	HeroImageURL    string
	HeroImagePrompt string
	MasterCopy      MasterCopy
}
