package editor

import (
	"testing"

	"creative-editor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertInside(t *testing.T, r domain.Rect, dims domain.Dimensions) {
	t.Helper()
	assert.GreaterOrEqual(t, r.X, 0.0)
	assert.GreaterOrEqual(t, r.Y, 0.0)
	assert.LessOrEqual(t, r.Right(), float64(dims.Width)+1e-9)
	assert.LessOrEqual(t, r.Bottom(), float64(dims.Height)+1e-9)
}

func TestDragCrop_StaysInBounds(t *testing.T) {
	dims := domain.Dimensions{Width: 1000, Height: 2000}
	m, err := NewMapper(domain.Size{Width: 250, Height: 500}, dims)
	require.NoError(t, err)

	box := domain.Rect{X: 100, Y: 100, Width: 400, Height: 300}

	positions := []domain.Point{
		{X: -50, Y: -50},
		{X: 0, Y: 0},
		{X: 100, Y: 200},
		{X: 240, Y: 490},
		{X: 10000, Y: 10000},
	}
	for _, p := range positions {
		got := DragCrop(box, p, m, dims)
		assertInside(t, got, dims)
		assert.Equal(t, box.Width, got.Width)
		assert.Equal(t, box.Height, got.Height)
	}

	got := DragCrop(box, domain.Point{X: 240, Y: 490}, m, dims)
	assert.Equal(t, 600.0, got.X)
	assert.Equal(t, 1700.0, got.Y)
}

func TestDragCrop_BoxLargerThanImageFloorsAtZero(t *testing.T) {
	dims := domain.Dimensions{Width: 100, Height: 100}
	m, err := NewMapper(domain.Size{Width: 100, Height: 100}, dims)
	require.NoError(t, err)

	got := DragCrop(domain.Rect{Width: 150, Height: 150}, domain.Point{X: 30, Y: 30}, m, dims)
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, 0.0, got.Y)
}

func TestResizeCrop_ClampsToImage(t *testing.T) {
	dims := domain.Dimensions{Width: 1000, Height: 1000}
	m, err := NewMapper(domain.Size{Width: 500, Height: 500}, dims)
	require.NoError(t, err)

	got := ResizeCrop(domain.Size{Width: 400, Height: 400}, domain.Point{X: 300, Y: 100}, m, dims)
	assert.Equal(t, domain.Rect{X: 600, Y: 200, Width: 400, Height: 800}, got)
	assertInside(t, got, dims)

	tiny := ResizeCrop(domain.Size{Width: 1, Height: 1}, domain.Point{X: 499, Y: 499}, m, dims)
	assert.Equal(t, domain.MinCropSize, tiny.Width)
	assert.Equal(t, domain.MinCropSize, tiny.Height)
	assertInside(t, tiny, dims)
}

func TestCropFromPercentage(t *testing.T) {
	t.Run("full shorter side on a portrait image", func(t *testing.T) {
		dims := domain.Dimensions{Width: 1000, Height: 2000}
		got := CropFromPercentage(100, dims)
		assert.Equal(t, domain.Rect{X: 0, Y: 500, Width: 1000, Height: 1000}, got)
		assertInside(t, got, dims)
	})

	t.Run("full shorter side on a landscape image", func(t *testing.T) {
		dims := domain.Dimensions{Width: 1920, Height: 1080}
		got := CropFromPercentage(100, dims)
		assert.Equal(t, domain.Rect{X: 420, Y: 0, Width: 1080, Height: 1080}, got)
		assertInside(t, got, dims)
	})

	t.Run("default eighty percent is centered", func(t *testing.T) {
		dims := domain.Dimensions{Width: 1000, Height: 1000}
		got := CropFromPercentage(domain.DefaultCropPercent, dims)
		assert.Equal(t, domain.Rect{X: 100, Y: 100, Width: 800, Height: 800}, got)
	})

	t.Run("percent outside range is clamped", func(t *testing.T) {
		dims := domain.Dimensions{Width: 400, Height: 400}
		assert.Equal(t, CropFromPercentage(100, dims), CropFromPercentage(250, dims))
		assert.Equal(t, CropFromPercentage(10, dims), CropFromPercentage(1, dims))
	})
}
