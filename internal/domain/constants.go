package domain

const (
	MinCropSize      = 20.0
	MinOverlaySize   = 50.0
	MinFontSize      = 12.0
	FontSizePerPixel = 0.8

	ApproxCharWidth  = 15.0
	ApproxTextHeight = 30.0

	DefaultCropPercent = 80.0
	MinCropPercent     = 10.0
	MaxCropPercent     = 100.0

	MinSaturation = -100.0
	MaxSaturation = 100.0
	MinFilter     = -100.0
	MaxFilter     = 100.0

	DefaultLogoMaxSize    = 200.0
	DefaultLogoWidthRatio = 0.25
	DefaultLogoInset      = 0.1
	DefaultLogoOpacity    = 1.0

	DefaultFontFamily = "sans-serif"
	DefaultTextColor  = "#ffffff"
)

const (
	BlobURLPrefix     = "blob:"
	PathPrefixBlob    = "blobs/"
	PathPrefixPreview = "previews/"
)

const (
	DefaultMaxUploadSize = 32 << 20
	DefaultThumbnailSize = 200
	DefaultJPEGQuality   = 85
)
