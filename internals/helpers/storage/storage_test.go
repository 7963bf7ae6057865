package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fileHeader(t *testing.T, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func TestConvertToWebPDownscales(t *testing.T) {
	out, err := ConvertToWebP(pngBytes(t, 200, 100), "cover.png", WebPOptions{MaxW: 50, MaxH: 50, Quality: 70})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 25, cfg.Height)
}

func TestConvertToWebPRejectsUnknownFormat(t *testing.T) {
	_, err := ConvertToWebP([]byte("definitely not an image"), "notes.txt", WebPOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestLocalStorePutAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "uploads/")

	url, err := store.Put(context.Background(), "news", "a.webp", []byte("x"), "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/news/a.webp", url)

	onDisk := filepath.Join(root, "news", "a.webp")
	_, err = os.Stat(onDisk)
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// foreign and already-removed URLs are ignored
	assert.NoError(t, store.Delete(context.Background(), "https://cdn.example.com/x.webp"))
	assert.NoError(t, store.Delete(context.Background(), url))
}

func TestLocalStoreKeepsWritesUnderRoot(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/uploads")

	url, err := store.Put(context.Background(), "../../etc", "b.webp", []byte("x"), "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/b.webp", url)
	_, err = os.Stat(filepath.Join(root, "etc", "b.webp"))
	assert.NoError(t, err)
}

func TestUploadImage(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")

	url, err := UploadImage(context.Background(), store, "news", fileHeader(t, "image", "My Cover.png", pngBytes(t, 10, 10)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/news/my-cover_"), url)
	assert.True(t, strings.HasSuffix(url, ".webp"), url)

	_, err = UploadImage(context.Background(), store, "news", fileHeader(t, "image", "doc.txt", []byte("plain text")))
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, fe.Code)
}
