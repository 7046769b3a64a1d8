// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging resizes uploaded banner images to the display widths the
// portals serve. Variants wider than the source are skipped to avoid
// upscaling. Output is JPEG regardless of input format.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Variant describes a single resized output.
type Variant struct {
	Name    string // e.g., "thumb", "full"
	Width   int    // Target width in pixels
	Quality int    // JPEG quality 1-100
}

// BannerVariants are the sizes generated for promotional banners.
var BannerVariants = []Variant{
	{Name: "thumb", Width: 480, Quality: 75},
	{Name: "full", Width: 1280, Quality: 85},
}

// ProcessedImage holds one generated variant ready for upload.
type ProcessedImage struct {
	Name        string
	Width       int
	Height      int
	Data        []byte
	ContentType string // Always "image/jpeg"
}

// GenerateVariants decodes the source image and produces a JPEG for each
// variant, capping at the original width. Always returns at least one
// variant for a decodable image.
func GenerateVariants(original []byte, variants []Variant) ([]ProcessedImage, error) {
	if len(variants) == 0 {
		variants = BannerVariants
	}

	src, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging decode: %w", err)
	}
	bounds := src.Bounds()
	origWidth := bounds.Dx()

	var results []ProcessedImage
	for _, v := range variants {
		targetWidth := v.Width
		if origWidth <= targetWidth {
			targetWidth = origWidth
		}

		targetHeight := bounds.Dy() * targetWidth / origWidth
		dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: v.Quality}); err != nil {
			return nil, fmt.Errorf("imaging encode %s: %w", v.Name, err)
		}

		results = append(results, ProcessedImage{
			Name:        v.Name,
			Width:       targetWidth,
			Height:      targetHeight,
			Data:        buf.Bytes(),
			ContentType: "image/jpeg",
		})

		// Nothing larger to generate once the original width is reached.
		if origWidth <= v.Width {
			break
		}
	}

	return results, nil
}
