package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveBase64ImageDataURI(t *testing.T) {
	mediaRoot := t.TempDir()
	content := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(content)

	ref, err := SaveBase64Image(mediaRoot, payload)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".png"))

	stored, err := os.ReadFile(filepath.Join(mediaRoot, ref))
	assert.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestSaveBase64ImageRawBase64(t *testing.T) {
	mediaRoot := t.TempDir()
	ref, err := SaveBase64Image(mediaRoot, base64.StdEncoding.EncodeToString([]byte("img")))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".png"))
}

func TestSaveBase64ImageRejectsGarbage(t *testing.T) {
	mediaRoot := t.TempDir()

	_, err := SaveBase64Image(mediaRoot, "data:image/png;base64,***notbase64***")
	assert.Error(t, err)

	_, err = SaveBase64Image(mediaRoot, "data:text/html;base64,PGI+")
	assert.Error(t, err)

	_, err = SaveBase64Image(mediaRoot, "data:image/png,nope")
	assert.Error(t, err)
}

func TestSaveBase64ImageUniqueNames(t *testing.T) {
	mediaRoot := t.TempDir()
	payload := base64.StdEncoding.EncodeToString([]byte("same"))

	first, err := SaveBase64Image(mediaRoot, payload)
	assert.NoError(t, err)
	second, err := SaveBase64Image(mediaRoot, payload)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
