package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// Image is a finished raster. It can be handed out as raw pixels, a PNG
// byte buffer, or a base64 string of that buffer for callers that cannot
// carry binary.
type Image struct {
	rgba *image.RGBA
}

// RGBA returns the backing pixel buffer.
func (i *Image) RGBA() *image.RGBA {
	return i.rgba
}

// Size returns the image edge length in pixels.
func (i *Image) Size() int {
	return i.rgba.Bounds().Dx()
}

// PNG encodes the image losslessly.
func (i *Image) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, i.rgba); err != nil {
		return nil, &Error{Op: "encode", Err: fmt.Errorf("png: %w", err)}
	}
	return buf.Bytes(), nil
}

// Base64 returns the PNG encoding as a standard base64 string.
func (i *Image) Base64() (string, error) {
	b, err := i.PNG()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
