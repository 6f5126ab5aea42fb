package media

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultMaxUploadBytes is the default upload limit (6MB)
const DefaultMaxUploadBytes = 6 * 1024 * 1024

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Resolver turns a media Input into the single canonical image URL stored on a post
type Resolver struct {
	store    BlobStore
	logger   *slog.Logger
	newKey   func(ext string) string
	maxBytes int
}

// NewResolver creates a resolver backed by store.
// maxBytes <= 0 selects DefaultMaxUploadBytes.
func NewResolver(store BlobStore, maxBytes int, logger *slog.Logger) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: blob store", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Resolver{
		store:    store,
		logger:   logger,
		newKey:   StorageKey,
		maxBytes: maxBytes,
	}, nil
}

// ResolveImage returns the image URL for in, or nil when the input carries no image.
// Flow:
//  1. No file: trim the URL text and return it unvalidated (nil when blank). No upload.
//  2. File: check it is a non-empty supported image within the size limit
//  3. Upload the bytes under a fresh random key
//  4. Resolve the key to a retrievable URL
//
// Exactly one upload happens per file input. Callers must not write a post when an error is returned.
func (r *Resolver) ResolveImage(ctx context.Context, in Input) (*string, error) {
	if !in.HasFile() {
		url := strings.TrimSpace(in.URL)
		if url == "" {
			return nil, nil
		}
		return &url, nil
	}

	contentType, ext, err := r.inspect(in.File)
	if err != nil {
		return nil, err
	}

	key := r.newKey(ext)
	if err := r.store.Upload(ctx, key, in.File.Data, contentType); err != nil {
		r.logger.Error("image upload failed",
			"key", key,
			"size", len(in.File.Data),
			"error", err)
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	url, err := r.store.PublicURL(ctx, key)
	if err != nil {
		r.logger.Error("image URL resolution failed", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrResolveFailed, err)
	}

	r.logger.Info("image uploaded",
		"key", key,
		"content_type", contentType,
		"size", len(in.File.Data))

	return &url, nil
}

// inspect validates the file and returns its content type and storage extension
func (r *Resolver) inspect(f *File) (string, string, error) {
	if len(f.Data) == 0 {
		return "", "", ErrEmptyFile
	}
	if len(f.Data) > r.maxBytes {
		return "", "", fmt.Errorf("%w: %d bytes exceeds maximum of %d bytes", ErrFileTooLarge, len(f.Data), r.maxBytes)
	}

	detected := mimetype.Detect(f.Data)
	if !isAllowedImage(detected) {
		return "", "", fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedType, detected.String(), strings.Join(allowedImageTypes, ", "))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
	if ext == "" {
		ext = strings.TrimPrefix(detected.Extension(), ".")
	}
	return detected.String(), ext, nil
}

func isAllowedImage(m *mimetype.MIME) bool {
	for _, t := range allowedImageTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}

// StorageKey returns a collision-resistant object key: a random token plus the file extension
func StorageKey(ext string) string {
	if ext == "" {
		return uuid.NewString()
	}
	return uuid.NewString() + "." + ext
}
