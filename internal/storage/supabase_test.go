package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemveil-backend/internal/storage"
)

func TestSupabaseStore_PublicURL(t *testing.T) {
	store, err := storage.NewSupabaseStore("https://abc.supabase.co/", "service-key", "gemveil-images")
	require.NoError(t, err)

	url := store.PublicURL("gemveil/promo/some-id/file.png")

	assert.Equal(t, "https://abc.supabase.co/storage/v1/object/public/gemveil-images/gemveil/promo/some-id/file.png", url)
}
