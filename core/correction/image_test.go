package correction

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image, level ...png.CompressionLevel) []byte {
	t.Helper()
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if len(level) > 0 {
		enc.CompressionLevel = level[0]
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img); err != nil {
		t.Fatalf("encodePNG(): %v", err)
	}
	return buf.Bytes()
}

func TestNormalizePNG(t *testing.T) {
	b, err := normalize(encodePNG(t, testImage(20, 10)), "image/png")
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decoding normalized output: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 20 || got.Dy() != 10 {
		t.Errorf("normalized bounds = %v, want 20x10", got)
	}
}

// Two different encodings of the same raster must normalize to identical
// bytes, otherwise content-addressing splits on the uploader's encoder.
func TestNormalizeDeterministic(t *testing.T) {
	img := testImage(64, 64)
	fast := encodePNG(t, img, png.BestSpeed)
	small := encodePNG(t, img, png.BestCompression)
	if bytes.Equal(fast, small) {
		t.Fatal("test needs two distinct encodings")
	}

	n1, err := normalize(fast, "image/png")
	if err != nil {
		t.Fatalf("normalize(fast) error = %v", err)
	}
	n2, err := normalize(small, "image/png")
	if err != nil {
		t.Fatalf("normalize(small) error = %v", err)
	}
	if !bytes.Equal(n1, n2) {
		t.Error("normalized outputs differ for the same raster")
	}
}

func TestNormalizeOtherFormats(t *testing.T) {
	img := testImage(16, 16)

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, img, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := normalize(jpg.Bytes(), "image/jpeg"); err != nil {
		t.Errorf("normalize(jpeg) error = %v", err)
	}

	var g bytes.Buffer
	if err := gif.Encode(&g, img, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := normalize(g.Bytes(), "image/gif"); err != nil {
		t.Errorf("normalize(gif) error = %v", err)
	}

	// no declared content type falls back to sniffing
	if _, err := normalize(jpg.Bytes(), ""); err != nil {
		t.Errorf("normalize(jpeg, sniffed) error = %v", err)
	}
}

func TestNormalizeUndecodable(t *testing.T) {
	tests := []struct {
		name        string
		b           []byte
		contentType string
	}{
		{name: "garbage", b: []byte("not a picture"), contentType: ""},
		{name: "empty", b: nil, contentType: "image/png"},
		{name: "wrong declared type", b: encodePNG(t, testImage(4, 4)), contentType: "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := normalize(tt.b, tt.contentType); err != ErrUndecodable {
				t.Errorf("normalize() error = %v, want %v", err, ErrUndecodable)
			}
		})
	}
}

func TestNormalizeDimensionsTooLarge(t *testing.T) {
	b := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, maxDimension+1, 1)))
	if _, err := normalize(b, "image/png"); err != ErrImageTooLarge {
		t.Errorf("normalize() error = %v, want %v", err, ErrImageTooLarge)
	}
}

func TestNormalizeEncodedTooLarge(t *testing.T) {
	// random noise does not compress; 1500x1500x4 bytes raw stays well above
	// the encoded cap
	img := image.NewNRGBA(image.Rect(0, 0, 1500, 1500))
	rnd := rand.New(rand.NewSource(1))
	rnd.Read(img.Pix)

	if _, err := normalize(encodePNG(t, img, png.BestSpeed), "image/png"); err != ErrEncodedTooLarge {
		t.Errorf("normalize() error = %v, want %v", err, ErrEncodedTooLarge)
	}
}
