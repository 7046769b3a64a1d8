package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testPNG returns an encoded PNG of the given width and height.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateVariants(t *testing.T) {
	src := testPNG(t, 2000, 1000)

	results, err := GenerateVariants(src, BannerVariants)
	if err != nil {
		t.Fatalf("GenerateVariants: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("variants: got %d, want 2", len(results))
	}

	thumb := results[0]
	if thumb.Width != 480 || thumb.Height != 240 {
		t.Errorf("thumb: got %dx%d, want 480x240", thumb.Width, thumb.Height)
	}
	if thumb.ContentType != "image/jpeg" {
		t.Errorf("content type: got %q", thumb.ContentType)
	}
	if len(thumb.Data) == 0 {
		t.Error("expected non-empty variant data")
	}
}

func TestGenerateVariantsSkipsUpscaling(t *testing.T) {
	src := testPNG(t, 600, 300)

	results, err := GenerateVariants(src, BannerVariants)
	if err != nil {
		t.Fatalf("GenerateVariants: %v", err)
	}
	// thumb at 480 plus the capped "full" at original width 600.
	if len(results) != 2 {
		t.Fatalf("variants: got %d, want 2", len(results))
	}
	if results[1].Width != 600 {
		t.Errorf("full variant width: got %d, want capped 600", results[1].Width)
	}
}

func TestGenerateVariantsRejectsGarbage(t *testing.T) {
	if _, err := GenerateVariants([]byte("not an image"), nil); err == nil {
		t.Error("expected decode error")
	}
}
