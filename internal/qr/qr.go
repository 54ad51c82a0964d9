// Package qr renders QR symbols as PNG, JPEG or SVG images.
package qr

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	SVG  Format = "svg"
)

type Level string

const (
	LevelLow     Level = "L"
	LevelMedium  Level = "M"
	LevelQuart   Level = "Q"
	LevelHighest Level = "H"
)

const (
	DefaultWidth  = 400
	DefaultMargin = 2
	DefaultLevel  = LevelHighest

	jpegQuality = 92
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedLevel  = errors.New("unsupported error correction level")
)

// ParseFormat accepts png, jpeg (or jpg) and svg. An empty string means png.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/" + string(f)
}

func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	switch l {
	case "":
		return DefaultLevel, nil
	case LevelLow, LevelMedium, LevelQuart, LevelHighest:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLevel, s)
	}
}

func (l Level) recovery() qrcode.RecoveryLevel {
	switch l {
	case LevelLow:
		return qrcode.Low
	case LevelMedium:
		return qrcode.Medium
	case LevelQuart:
		return qrcode.High
	default:
		return qrcode.Highest
	}
}

// Options control the rendered image. Width is in pixels, Margin in modules.
type Options struct {
	Format Format
	Width  int
	Margin int
	Level  Level
}

func DefaultOptions() Options {
	return Options{
		Format: PNG,
		Width:  DefaultWidth,
		Margin: DefaultMargin,
		Level:  DefaultLevel,
	}
}

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode builds the symbol for content and renders it in opts.Format.
// It fails when content does not fit in the largest symbol at opts.Level.
func (e *Encoder) Encode(ctx context.Context, content string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code, err := qrcode.New(content, opts.Level.recovery())
	if err != nil {
		return nil, fmt.Errorf("error building qr symbol: %w", err)
	}
	code.DisableBorder = true

	grid := newLayout(code.Bitmap(), opts.Width, opts.Margin)

	switch opts.Format {
	case SVG:
		return grid.svg(), nil
	case JPEG:
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, grid.image(), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("error encoding jpeg: %w", err)
		}
		return buf.Bytes(), nil
	case PNG, "":
		var buf bytes.Buffer
		if err := png.Encode(&buf, grid.image()); err != nil {
			return nil, fmt.Errorf("error encoding png: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

// DataURL wraps raster image bytes into a data: URL.
func DataURL(f Format, b []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", f.ContentType(), base64.StdEncoding.EncodeToString(b))
}

// layout places the module bitmap on a square canvas of size pixels.
// Pixels that do not divide evenly into modules widen the quiet zone.
type layout struct {
	bitmap [][]bool
	scale  int
	size   int
	offset int
}

func newLayout(bitmap [][]bool, width, margin int) layout {
	if margin < 0 {
		margin = 0
	}
	modules := len(bitmap)
	total := modules + 2*margin

	scale := 1
	if total > 0 && width/total > 1 {
		scale = width / total
	}

	size := width
	if size < total*scale {
		size = total * scale
	}

	return layout{
		bitmap: bitmap,
		scale:  scale,
		size:   size,
		offset: (size - modules*scale) / 2,
	}
}

func (l layout) image() image.Image {
	img := image.NewPaletted(image.Rect(0, 0, l.size, l.size), color.Palette{color.White, color.Black})
	for y, row := range l.bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			px, py := l.offset+x*l.scale, l.offset+y*l.scale
			for dy := 0; dy < l.scale; dy++ {
				start := img.PixOffset(px, py+dy)
				for dx := 0; dx < l.scale; dx++ {
					img.Pix[start+dx] = 1
				}
			}
		}
	}
	return img
}

func (l layout) svg() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		l.size, l.size, l.size, l.size)
	buf.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)
	buf.WriteString(`<path fill="#000000" d="`)
	for y, row := range l.bitmap {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(&buf, "M%d %dh%dv%dh-%dz",
					l.offset+x*l.scale, l.offset+y*l.scale, l.scale, l.scale, l.scale)
			}
		}
	}
	buf.WriteString(`"/></svg>`)
	return buf.Bytes()
}
