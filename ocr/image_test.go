package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestScaleForOCR(t *testing.T) {
	data := encodeTestImage(t, 100, 50)

	scaled, err := ScaleForOCR(data, 2)
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(scaled))
	if err != nil {
		t.Fatal(err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 100 {
		t.Errorf("scaled dimensions = %dx%d, want 200x100", bounds.Dx(), bounds.Dy())
	}
}

func TestScaleForOCR_IdentityFactor(t *testing.T) {
	data := encodeTestImage(t, 40, 40)

	out, err := ScaleForOCR(data, 1)
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 {
		t.Errorf("identity scale changed dimensions to %d", img.Bounds().Dx())
	}
}

func TestScaleForOCR_InvalidInput(t *testing.T) {
	if _, err := ScaleForOCR([]byte("not an image"), 2); err == nil {
		t.Error("expected decode error")
	}
	if _, err := ScaleForOCR(encodeTestImage(t, 10, 10), 0); err == nil {
		t.Error("expected error for zero factor")
	}
}
