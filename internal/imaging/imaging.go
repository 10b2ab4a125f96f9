package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// JPEGQuality is the compression quality for the JPEG handed to the vision
// backend.
const JPEGQuality = 90

// DecodeDataURL decodes a client-supplied embedded image of the form
// "<header>,<base64-payload>" (e.g. "data:image/png;base64,...."). Any
// failure along the way means the payload is not a usable image.
func DecodeDataURL(dataURL string) (image.Image, error) {
	_, payload, found := strings.Cut(dataURL, ",")
	if !found {
		// No header prefix; treat the whole string as the payload.
		payload = dataURL
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 payload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// NormalizeRGB flattens the image onto an opaque white canvas, collapsing
// alpha channels and expanding greyscale or paletted images into a plain
// 3-channel representation.
func NormalizeRGB(img image.Image) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

// EncodeJPEGBase64 re-encodes the image as JPEG and returns the base64
// payload used on the wire to the vision backend.
func EncodeJPEGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", fmt.Errorf("encoding JPEG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func init() {
	// Register decoders (jpeg is registered by default, but be explicit).
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
