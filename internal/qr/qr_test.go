package qr

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultSize},
		{50, MinSize},
		{300, 300},
		{5000, MaxSize},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampSize(tt.in))
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = ParseHexColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#zzzzzz")
	assert.Error(t, err)
}

func TestPNG(t *testing.T) {
	data, err := PNG("https://example.com/p/report", Options{Size: 200})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestPNG_Rejects(t *testing.T) {
	_, err := PNG("", Options{})
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = PNG(strings.Repeat("a", MaxPayload+1), Options{})
	assert.ErrorIs(t, err, ErrPayloadSize)

	_, err = PNG("x", Options{Foreground: "red"})
	assert.Error(t, err)
}
