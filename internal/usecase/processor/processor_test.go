package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"creative-editor/internal/domain"
	"creative-editor/internal/usecase/processor/operations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func testLogger() *zlog.Zerolog {
	zlog.Init()
	return &zlog.Logger
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestCompositor_CropAndLogo(t *testing.T) {
	c, err := NewCompositor(testLogger())
	require.NoError(t, err)

	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	adj := domain.ImageAdjustments{
		CropBox:      domain.Rect{X: 10, Y: 10, Width: 50, Height: 30},
		LogoOverlays: []domain.LogoOverlay{{ID: "l", X: 20, Y: 20, Width: 10, Height: 10, Opacity: 1}},
	}
	logos := []LogoImage{{Overlay: adj.LogoOverlays[0], Image: solid(4, 4, blue)}}

	data, err := c.Composite(solid(100, 50, red), domain.Dimensions{Width: 100, Height: 50}, adj, logos)
	require.NoError(t, err)

	out, format, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 50, 30), out.Bounds())

	assert.Equal(t, blue, rgbaAt(out, 15, 15))
	assert.Equal(t, red, rgbaAt(out, 40, 25))
}

func TestCompositor_ScalesBaseToAssetSize(t *testing.T) {
	c, err := NewCompositor(testLogger())
	require.NoError(t, err)

	adj := domain.ImageAdjustments{CropBox: domain.Rect{Width: 200, Height: 100}}
	data, err := c.Composite(solid(20, 10, color.White), domain.Dimensions{Width: 200, Height: 100}, adj, nil)
	require.NoError(t, err)

	out, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), out.Bounds())
}

func TestCompositor_DrawsTextRelativeToCrop(t *testing.T) {
	c, err := NewCompositor(testLogger())
	require.NoError(t, err)

	black := color.RGBA{0, 0, 0, 255}
	adj := domain.ImageAdjustments{
		CropBox: domain.Rect{X: 100, Y: 100, Width: 100, Height: 100},
		TextOverlays: []domain.TextOverlay{
			{ID: "t", Text: "HELLO", X: 110, Y: 110, FontSize: 24, Color: "#ffffff", FontFamily: "Impact, sans-serif"},
		},
	}

	data, err := c.Composite(solid(300, 300, black), domain.Dimensions{Width: 300, Height: 300}, adj, nil)
	require.NoError(t, err)

	out, _, err := Decode(data)
	require.NoError(t, err)

	lit := 0
	for y := 10; y < 40; y++ {
		for x := 10; x < 90; x++ {
			if rgbaAt(out, x, y).R > 200 {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
	assert.Equal(t, black, rgbaAt(out, 95, 95))
}

func TestCompositor_SkipsUndecodedLogo(t *testing.T) {
	c, err := NewCompositor(testLogger())
	require.NoError(t, err)

	adj := domain.ImageAdjustments{CropBox: domain.Rect{Width: 10, Height: 10}}
	logos := []LogoImage{{Overlay: domain.LogoOverlay{ID: "broken", Width: 5, Height: 5, Opacity: 1}}}

	_, err = c.Composite(solid(10, 10, color.White), domain.Dimensions{Width: 10, Height: 10}, adj, logos)
	assert.NoError(t, err)
}

func TestCompositor_RejectsEmptyCanvas(t *testing.T) {
	c, err := NewCompositor(testLogger())
	require.NoError(t, err)

	_, err = c.Composite(solid(1, 1, color.White), domain.Dimensions{}, domain.ImageAdjustments{}, nil)
	assert.ErrorIs(t, err, ErrInvalidCanvas)
}

func TestPreviewer_RendersSquareJPEG(t *testing.T) {
	p := NewPreviewer(64, 80, testLogger())

	data, err := p.Render(encodePNG(t, solid(300, 100, color.White)))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
}

func TestPreviewer_RejectsGarbage(t *testing.T) {
	p := NewPreviewer(0, 0, testLogger())

	_, err := p.Render([]byte("not an image"))
	assert.ErrorIs(t, err, ErrDecodeImage)
}

func TestDrawLogo_Opacity(t *testing.T) {
	dst := solid(10, 10, color.RGBA{0, 0, 0, 255})
	operations.DrawLogo(dst, solid(2, 2, color.RGBA{255, 255, 255, 255}), image.Rect(0, 0, 10, 10), 0.5)

	got := rgbaAt(dst, 5, 5)
	assert.InDelta(t, 128, int(got.R), 2)
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.RGBA{0x14, 0x9e, 0xca, 255}, operations.ParseHexColor("#149ECA"))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, operations.ParseHexColor("#fff"))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, operations.ParseHexColor("white"))
}
