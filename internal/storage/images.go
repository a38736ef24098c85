package storage

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// extensions maps the media types accepted in data URIs to file extensions.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// SaveBase64Image decodes a base64 image payload (either a raw base64 string
// or a "data:image/...;base64," data URI) and writes it under
// mediaRoot/recipes/images. It returns the stored path relative to mediaRoot.
func SaveBase64Image(mediaRoot, payload string) (string, error) {
	ext := "png"
	data := payload

	if strings.HasPrefix(payload, "data:") {
		mediaType, rest, found := strings.Cut(strings.TrimPrefix(payload, "data:"), ";base64,")
		if !found {
			return "", fmt.Errorf("image payload is not base64 encoded")
		}
		mapped, ok := extensions[mediaType]
		if !ok {
			return "", fmt.Errorf("unsupported image type %q", mediaType)
		}
		ext = mapped
		data = rest
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	name := make([]byte, 16)
	if _, err := rand.Read(name); err != nil {
		return "", fmt.Errorf("failed to generate image name: %w", err)
	}

	relPath := filepath.Join("recipes", "images", hex.EncodeToString(name)+"."+ext)
	fullPath := filepath.Join(mediaRoot, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(fullPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return relPath, nil
}
