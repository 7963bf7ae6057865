// Package storage keeps uploaded news images either on local disk (served by
// the app under the upload URL base) or in an Aliyun OSS bucket.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// MaxUploadSize guards a single image upload before decoding.
const MaxUploadSize = int64(5 * 1024 * 1024)

type BlobStore interface {
	// Put stores data under dir/name and returns its public URL.
	Put(ctx context.Context, dir, name string, data []byte, contentType string) (string, error)
	// Delete removes an object by the URL Put returned. URLs the store does
	// not own are ignored.
	Delete(ctx context.Context, publicURL string) error
}

// NewFromEnv prefers OSS when ALI_OSS_* is configured and falls back to disk.
func NewFromEnv(uploadDir, urlBase string) BlobStore {
	if getEnv("ALI_OSS_ENDPOINT") != "" {
		s, err := NewOSSStoreFromEnv("news")
		if err == nil {
			log.Println("[INFO] Image storage: Aliyun OSS")
			return s
		}
		log.Printf("[WARN] OSS storage unavailable, using local disk: %v", err)
	}
	log.Printf("[INFO] Image storage: local disk %s", uploadDir)
	return NewLocalStore(uploadDir, urlBase)
}

// UploadImage re-encodes a multipart image as WebP and stores it in dir.
func UploadImage(ctx context.Context, store BlobStore, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "image file is missing")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("image too large (max %d bytes)", MaxUploadSize))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	data, err := ConvertToWebP(all, fh.Filename, DefaultWebPOptionsFromEnv())
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported image format (use jpg/png/webp)")
		}
		return "", fiber.NewError(fiber.StatusBadRequest, "image could not be decoded")
	}

	return store.Put(ctx, dir, objectName(fh.Filename, ".webp"), data, "image/webp")
}

func objectName(filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = slugify(base)
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s_%s_%s%s", base, time.Now().Format("20060102_150405"), randHex(3), ext)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return -1
	}, s)
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
