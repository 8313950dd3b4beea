// Package qr renders QR code PNGs.
package qr

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultForeground = "#000000"
	DefaultBackground = "#ffffff"
	DefaultSize       = 256
	MinSize           = 128
	MaxSize           = 1024
	// MaxPayload is the longest content accepted for encoding.
	MaxPayload = 2048
)

var (
	ErrEmptyPayload = errors.New("qr payload is empty")
	ErrPayloadSize  = fmt.Errorf("qr payload exceeds %d bytes", MaxPayload)
)

// Options controls rendering. Zero values fall back to the defaults.
type Options struct {
	Foreground string
	Background string
	Size       int
}

// Normalize fills defaults and clamps the size.
func (o Options) Normalize() Options {
	if o.Foreground == "" {
		o.Foreground = DefaultForeground
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	o.Size = ClampSize(o.Size)
	return o
}

// ClampSize maps 0 to DefaultSize and keeps everything else inside [MinSize, MaxSize].
func ClampSize(size int) int {
	switch {
	case size == 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// PNG encodes content with medium error correction.
func PNG(content string, opts Options) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyPayload
	}
	if len(content) > MaxPayload {
		return nil, ErrPayloadSize
	}
	opts = opts.Normalize()

	fg, err := ParseHexColor(opts.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := ParseHexColor(opts.Background)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.ForegroundColor = fg
	code.BackgroundColor = bg
	return code.PNG(opts.Size)
}

// ParseHexColor accepts #rgb and #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
