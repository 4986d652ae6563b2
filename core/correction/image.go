package correction

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// MaxPictureSize caps both the raw upload and the re-encoded PNG.
const MaxPictureSize = 5 << 20 // 5 MiB

// maxDimension caps the decoded raster in either direction.
const maxDimension = 10_000

var (
	// errors
	ErrUndecodable     = errors.New("picture cannot be decoded")
	ErrImageTooLarge   = errors.New("picture dimensions exceed limits")
	ErrEncodedTooLarge = errors.New("encoded picture is too large")

	errEncodingFailed = errors.New("encoding picture as PNG failed")
)

// normalize decodes an uploaded picture and re-encodes it as PNG so that all
// stored blobs share one format and one encoder's output for identical pixel
// data; without this, content-addressing would depend on which client encoded
// the upload.
func normalize(b []byte, contentType string) ([]byte, error) {
	img, err := decode(b, contentType)
	if err != nil {
		return nil, ErrUndecodable
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		return nil, ErrImageTooLarge
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, errEncodingFailed
	}
	if buf.Len() > MaxPictureSize {
		return nil, ErrEncodedTooLarge
	}
	return buf.Bytes(), nil
}

// decode decodes with the decoder named by the declared content type when
// there is one; anything else is sniffed from the magic bytes.
func decode(b []byte, contentType string) (image.Image, error) {
	r := bytes.NewReader(b)
	switch contentType {
	case "image/png":
		return png.Decode(r)
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/gif":
		return gif.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	case "image/tiff":
		return tiff.Decode(r)
	case "image/bmp":
		return bmp.Decode(r)
	}
	img, _, err := image.Decode(r)
	return img, err
}
