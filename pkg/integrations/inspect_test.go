package integrations

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/kerbaras/logolink/pkg/sources"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logosDir = "src/assets/logos"

func createTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{255, 107, 157, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setupLogos(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(logosDir, 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, logosDir+"/"+name, content, 0o644))
	}
	return fs
}

func TestInspector_InspectPNG(t *testing.T) {
	fs := setupLogos(t, map[string][]byte{"foo.png": createTestPNG(t, 32, 16)})

	info := NewInspector(fs, logosDir).Inspect("foo.png")
	require.NoError(t, info.Err)

	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 32, info.Width)
	assert.Equal(t, 16, info.Height)
	assert.False(t, info.Vector)
	assert.False(t, info.Oversized)
	assert.Positive(t, info.Size)
}

func TestInspector_InspectSVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120 60"><rect width="120" height="60" fill="#FF6B9D"/></svg>`
	fs := setupLogos(t, map[string][]byte{"bar.svg": []byte(svg)})

	info := NewInspector(fs, logosDir).Inspect("bar.svg")
	require.NoError(t, info.Err)

	assert.Equal(t, "svg", info.Format)
	assert.True(t, info.Vector)
	assert.Equal(t, 120, info.Width)
	assert.Equal(t, 60, info.Height)
}

func TestInspector_InspectCorrupt(t *testing.T) {
	fs := setupLogos(t, map[string][]byte{"broken.jpg": []byte("not an image")})

	info := NewInspector(fs, logosDir).Inspect("broken.jpg")
	assert.Error(t, info.Err)
}

func TestInspector_InspectMissingAndDirectory(t *testing.T) {
	fs := setupLogos(t, nil)
	require.NoError(t, fs.MkdirAll(logosDir+"/sub.png", 0o755))
	inspector := NewInspector(fs, logosDir)

	assert.Error(t, inspector.Inspect("gone.png").Err)
	assert.Error(t, inspector.Inspect("sub.png").Err)
}

func TestInspector_Oversized(t *testing.T) {
	fs := setupLogos(t, map[string][]byte{"big.png": createTestPNG(t, 40, 10)})
	inspector := NewInspector(fs, logosDir)

	inspector.SetMaxDimension(32)
	assert.True(t, inspector.Inspect("big.png").Oversized)

	inspector.SetMaxDimension(0)
	assert.False(t, inspector.Inspect("big.png").Oversized)
}

func TestInspector_InspectAll(t *testing.T) {
	fs := setupLogos(t, map[string][]byte{
		"b.png": createTestPNG(t, 4, 4),
		"a.png": createTestPNG(t, 8, 8),
	})

	infos := NewInspector(fs, logosDir).InspectAll(sources.NewInventory("b.png", "a.png"))
	require.Len(t, infos, 2)
	assert.Equal(t, "a.png", infos[0].Name)
	assert.Equal(t, 8, infos[0].Width)
	assert.Equal(t, "b.png", infos[1].Name)
}
