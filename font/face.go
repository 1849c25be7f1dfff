package font

// Face pairs a Handle with the configuration a shaper or renderer
// needs to use it: a size in points, a DPI-independent direction,
// hinting preference, and a language tag. Face is lightweight and
// shares its Handle's immutable data; multiple Faces may wrap the
// same Handle at different sizes.
type Face struct {
	handle    *Handle
	size      float64
	direction Direction
	hinting   Hinting
	language  string
}

// FaceOption configures NewFace.
type FaceOption func(*faceConfig)

type faceConfig struct {
	direction Direction
	hinting   Hinting
	language  string
}

func defaultFaceConfig() faceConfig {
	return faceConfig{direction: DirectionLTR, hinting: HintingFull, language: "en"}
}

func WithDirection(d Direction) FaceOption {
	return func(c *faceConfig) { c.direction = d }
}

func WithHinting(h Hinting) FaceOption {
	return func(c *faceConfig) { c.hinting = h }
}

func WithLanguage(lang string) FaceOption {
	return func(c *faceConfig) { c.language = lang }
}

// NewFace creates a Face at size points from handle. It does not
// Retain handle; the caller remains responsible for its lifetime.
func NewFace(handle *Handle, size float64, opts ...FaceOption) (*Face, error) {
	if handle == nil {
		return nil, ErrNilHandle
	}
	if size <= 0 {
		return nil, ErrEmptyData
	}

	cfg := defaultFaceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Face{
		handle:    handle,
		size:      size,
		direction: cfg.direction,
		hinting:   cfg.hinting,
		language:  cfg.language,
	}, nil
}

func (f *Face) Handle() *Handle      { return f.handle }
func (f *Face) Size() float64        { return f.size }
func (f *Face) Direction() Direction { return f.direction }
func (f *Face) Hinting() Hinting     { return f.hinting }
func (f *Face) Language() string     { return f.language }

// PPEM returns the pixels-per-em this face's size corresponds to at
// 1x DPI scale, i.e. Size() itself (a pixels-per-em face at DPI scale
// dpiScale is Size()*dpiScale).
func (f *Face) PPEM(dpiScale float64) float64 {
	if dpiScale <= 0 {
		dpiScale = 1
	}
	return f.size * dpiScale
}

// Metrics returns font metrics at this face's size.
func (f *Face) Metrics(dpiScale float64) Metrics {
	return f.handle.Metrics(f.PPEM(dpiScale))
}

// Variations returns the variation-axis instance of this face's
// underlying Handle.
func (f *Face) Variations() []VariationAxis {
	return f.handle.Variations()
}
