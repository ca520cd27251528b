package utils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestUtils_ShouldDownloadImage(t *testing.T) {
	data := samplePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	f, err := DownloadImage(context.Background(), srv.URL+"/sample.png")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestUtils_ShouldRejectNonImageDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("just some text"))
	}))
	defer srv.Close()

	_, err := DownloadImage(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestUtils_ShouldFailOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := DownloadImage(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://example.com/images/sample.png"))
	assert.False(t, IsValidUrl("testdata/sample.png"))
	assert.False(t, IsValidUrl("-"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	sampleImg := filepath.Join(t.TempDir(), "sample.png")
	require.NoError(t, os.WriteFile(sampleImg, samplePNG(t), 0o644))

	ftype, err := DetectContentType(sampleImg)
	require.NoError(t, err)

	if !strings.Contains(ftype, "image") {
		t.Errorf("Content type expected to be of type image, got: %v", ftype)
	}
}
