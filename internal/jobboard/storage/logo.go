package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxLogoSize is the upload size limit for company logos.
const MaxLogoSize = 2 << 20 // 2 MiB

// logoKeyPrefix namespaces logo objects inside the bucket.
const logoKeyPrefix = "company-logos/"

var allowedLogoTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// Logo is the result of a successful upload: the stored object key, its
// public URL and a locally computed preview independent of the upload.
type Logo struct {
	Key     string
	URL     string
	Preview string
}

// LogoUploader validates logo files, uploads them under randomized keys and
// removes replaced objects.
type LogoUploader struct {
	store  ObjectStore
	logger *zap.Logger
}

// NewLogoUploader constructs a LogoUploader over the given store.
func NewLogoUploader(store ObjectStore, logger *zap.Logger) *LogoUploader {
	return &LogoUploader{
		store:  store,
		logger: logger.Named("logo_uploader"),
	}
}

// ValidateLogo checks size and file type, returning the content type for the
// file. Failures wrap ErrInvalidInput and happen before any storage contact.
func ValidateLogo(filename string, size int64) (string, error) {
	if size > MaxLogoSize {
		return "", fmt.Errorf("%w: logo exceeds %d bytes", e.ErrInvalidInput, MaxLogoSize)
	}
	contentType, ok := allowedLogoTypes[strings.ToLower(path.Ext(filename))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported logo type %q", e.ErrInvalidInput, path.Ext(filename))
	}
	return contentType, nil
}

// Preview encodes the file as a data URI so callers can render the logo
// before (and regardless of) the network upload.
func Preview(data []byte, contentType string) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Upload validates the file, uploads it under a randomized key and returns
// the stored logo. On validation or storage failure nothing is stored and no
// URL is returned.
func (u *LogoUploader) Upload(ctx context.Context, filename string, data []byte) (*Logo, error) {
	contentType, err := ValidateLogo(filename, int64(len(data)))
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%s-%d%s",
		logoKeyPrefix, uuid.NewString(), time.Now().Unix(), strings.ToLower(path.Ext(filename)))
	preview := Preview(data, contentType)

	if err := u.store.Put(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	u.logger.Info("Uploaded logo",
		zap.String("key", key),
		zap.Int("size", len(data)),
	)
	return &Logo{
		Key:     key,
		URL:     u.store.PublicURL(key),
		Preview: preview,
	}, nil
}

// Remove deletes a previously uploaded logo given its public URL. URLs that
// do not point into the logo namespace are ignored.
func (u *LogoUploader) Remove(ctx context.Context, url string) error {
	key := KeyFromURL(url)
	if key == "" {
		return nil
	}
	if err := u.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("failed to remove logo: %w", err)
	}
	u.logger.Info("Removed replaced logo", zap.String("key", key))
	return nil
}

// KeyFromURL derives the object key from a public logo URL. Returns "" when
// the URL does not reference a logo object.
func KeyFromURL(url string) string {
	idx := strings.Index(url, logoKeyPrefix)
	if idx < 0 {
		return ""
	}
	return url[idx:]
}
