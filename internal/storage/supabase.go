package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	supastorage "github.com/supabase-community/storage-go"
)

// SupabaseStore stores images in a Supabase Storage bucket.
type SupabaseStore struct {
	client     *supastorage.Client
	bucket     string
	baseURL    string
	httpClient *http.Client
}

func NewSupabaseStore(supabaseURL, serviceKey, bucket string) (*SupabaseStore, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := supastorage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &SupabaseStore{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (s *SupabaseStore) Upload(ctx context.Context, r io.Reader, contentType, folder string) (*UploadResult, error) {
	if contentType == "" {
		contentType = "image/png"
	}
	path := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), extensionFor(contentType))

	upsert := true
	_, err := s.client.UploadFile(s.bucket, path, r, supastorage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return nil, fmt.Errorf("supabase upload: %w", err)
	}

	return &UploadResult{URL: s.PublicURL(path), PublicID: path}, nil
}

func (s *SupabaseStore) UploadFromURL(ctx context.Context, sourceURL, folder string) (*UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase upload: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase upload: fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supabase upload: fetch source: status %d", resp.StatusCode)
	}

	return s.Upload(ctx, resp.Body, resp.Header.Get("Content-Type"), folder)
}

// PublicURL returns the public object URL for a stored path.
func (s *SupabaseStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
