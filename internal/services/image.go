package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
)

// ImageStore is the blob-store boundary for recipe images. Recipes carry
// both the object key and the public URL; everything past this interface
// is opaque to the core.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// InlineImage is a decoded "data:image/<ext>;base64,<payload>" value.
type InlineImage struct {
	Data        []byte
	Ext         string
	ContentType string
}

// ParseInlineImage decodes the inline base64 image representation accepted
// on recipe writes.
func ParseInlineImage(value string) (*InlineImage, *apierr.Error) {
	if !strings.HasPrefix(value, "data:image/") {
		return nil, apierr.Validation("image", "image must be a base64-encoded data URI")
	}
	head, payload, found := strings.Cut(value, ";base64,")
	if !found || payload == "" {
		return nil, apierr.Validation("image", "image must be base64 encoded")
	}
	contentType := strings.TrimPrefix(head, "data:")
	ext := strings.TrimPrefix(contentType, "image/")
	if ext == "" || strings.ContainsAny(ext, "/\\") {
		return nil, apierr.Validation("image", "unsupported image type %q", contentType)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apierr.Validation("image", "image payload is not valid base64")
	}
	return &InlineImage{Data: data, Ext: ext, ContentType: contentType}, nil
}

type gcsImageStore struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	cdnDomain     string
}

func NewGCSImageStore(log *logger.Logger) (ImageStore, error) {
	serviceLog := log.With("service", "GCSImageStore")
	bucket := os.Getenv("GCS_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	cdnDomain := os.Getenv("CDN_DOMAIN")
	saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")

	ctx := context.Background()
	var stClient *storage.Client
	var err error
	if saPath != "" {
		stClient, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, relying on ambient credentials")
		stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &gcsImageStore{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucket,
		cdnDomain:     cdnDomain,
	}, nil
}

func (gs *gcsImageStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := gs.storageClient.Bucket(gs.bucketName).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close writer for %q: %w", key, err)
	}
	return gs.publicURL(key), nil
}

func (gs *gcsImageStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := gs.storageClient.Bucket(gs.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (gs *gcsImageStore) publicURL(key string) string {
	if gs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", gs.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", gs.bucketName, key)
}

type localImageStore struct {
	log     *logger.Logger
	rootDir string
	baseURL string
}

// NewLocalImageStore writes images to the local filesystem. Development
// fallback for environments without bucket credentials.
func NewLocalImageStore(log *logger.Logger, rootDir, baseURL string) ImageStore {
	if rootDir == "" {
		rootDir = "media"
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080/media"
	}
	return &localImageStore{
		log:     log.With("service", "LocalImageStore"),
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (ls *localImageStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := filepath.Join(ls.rootDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image %q: %w", key, err)
	}
	return ls.baseURL + "/" + key, nil
}

func (ls *localImageStore) Delete(ctx context.Context, key string) error {
	path := filepath.Join(ls.rootDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image %q: %w", key, err)
	}
	return nil
}
