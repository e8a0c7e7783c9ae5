package vg

import "github.com/gogpu/vg/internal/gpubackend"

// Config holds the capacity and tuning knobs recognized at Context
// creation, mirroring the teacher's functional-options pattern
// (options.go) generalized to spec §6's configuration table.
type Config struct {
	MaxGradients         uint32
	MaxImagePatterns     uint32
	MaxFonts             uint32
	MaxStateStackSize    uint32
	MaxImages            uint32
	MaxCommandLists      uint32
	MaxVBVertices        uint32
	FontAtlasImageFlags  uint32
	MaxCommandListDepth  int
	MaxTextConfigs       uint32

	gpuBackendName string
	gpuBackend     gpubackend.Backend
	fontSystem     FontSystem
}

// DefaultConfig returns the configuration used when NewContext is called
// with no options, matching the original renderer's documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxGradients:        256,
		MaxImagePatterns:    256,
		MaxFonts:            8,
		MaxStateStackSize:   32,
		MaxImages:           256,
		MaxCommandLists:     256,
		MaxVBVertices:       65536, // spec §4.2: MAX <= 65536 (16-bit indices)
		FontAtlasImageFlags: 0,
		MaxCommandListDepth: 8,
		MaxTextConfigs:      256,
		gpuBackendName:      "software",
	}
}

// Option configures a Config during NewContext.
type Option func(*Config)

// WithMaxGradients caps the number of gradients issuable in a single frame.
func WithMaxGradients(n uint32) Option {
	return func(c *Config) { c.MaxGradients = n }
}

// WithMaxImagePatterns caps the number of image patterns issuable in a
// single frame.
func WithMaxImagePatterns(n uint32) Option {
	return func(c *Config) { c.MaxImagePatterns = n }
}

// WithMaxFonts caps the number of fonts that can be registered via
// CreateFont.
func WithMaxFonts(n uint32) Option {
	return func(c *Config) { c.MaxFonts = n }
}

// WithMaxStateStackSize caps PushState nesting depth.
func WithMaxStateStackSize(n uint32) Option {
	return func(c *Config) { c.MaxStateStackSize = n }
}

// WithMaxImages caps the number of live images.
func WithMaxImages(n uint32) Option {
	return func(c *Config) { c.MaxImages = n }
}

// WithMaxCommandLists caps the number of live command lists.
func WithMaxCommandLists(n uint32) Option {
	return func(c *Config) { c.MaxCommandLists = n }
}

// WithMaxVBVertices caps vertices per arena. Values above 65536 are
// rejected silently (clamped) since indices are 16-bit (spec §4.2).
func WithMaxVBVertices(n uint32) Option {
	return func(c *Config) {
		if n > 65536 {
			n = 65536
		}
		c.MaxVBVertices = n
	}
}

// WithFontAtlasImageFlags sets the sampler flags used for the font atlas
// image (bilinear filtering by default).
func WithFontAtlasImageFlags(flags uint32) Option {
	return func(c *Config) { c.FontAtlasImageFlags = flags }
}

// WithMaxCommandListDepth caps SubmitCommandList recursion.
func WithMaxCommandListDepth(n int) Option {
	return func(c *Config) { c.MaxCommandListDepth = n }
}

// WithMaxTextConfigs caps the number of live CreateTextConfig handles, the
// indirection Text/TextBox need to carry a single uint32 across the
// command-list wire format (spec §4.6/§4.7).
func WithMaxTextConfigs(n uint32) Option {
	return func(c *Config) { c.MaxTextConfigs = n }
}

// WithGpuBackend selects the named registered GpuBackend collaborator
// ("software" or "gogpu"), or installs a pre-built one directly.
func WithGpuBackend(nameOrBackend any) Option {
	return func(c *Config) {
		switch v := nameOrBackend.(type) {
		case string:
			c.gpuBackendName = v
		case gpubackend.Backend:
			c.gpuBackend = v
		}
	}
}

// WithFontSystem installs a custom FontSystem collaborator, overriding the
// default internal/fontsys.System adapter.
func WithFontSystem(fs FontSystem) Option {
	return func(c *Config) { c.fontSystem = fs }
}
