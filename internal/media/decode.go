package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register GIF for DecodeConfig
	_ "image/jpeg" // register JPEG for DecodeConfig
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// transcoders decode formats the deck cannot embed; their output is
// re-encoded as PNG.
var transcoders = map[string]func(io.Reader) (image.Image, error){
	"image/webp": webp.Decode,
	"image/bmp":  bmp.Decode,
	"image/tiff": tiff.Decode,
}

// inspect sniffs data and fills in content type and dimensions. Formats the
// deck cannot embed (WebP, BMP, TIFF) are transcoded to PNG.
func inspect(ref string, data []byte) (Asset, error) {
	contentType := sniff(data)

	switch contentType {
	case "image/png", "image/jpeg", "image/gif":
	default:
		decode, ok := transcoders[contentType]
		if !ok {
			return Asset{}, fmt.Errorf("%w: %s", ErrNotImage, contentType)
		}
		img, err := decode(bytes.NewReader(data))
		if err != nil {
			return Asset{}, fmt.Errorf("%w: decoding %s: %v", ErrNotImage, contentType, err)
		}
		if data, err = encodePNG(img); err != nil {
			return Asset{}, err
		}
		contentType = "image/png"
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	return Asset{
		Ref:         ref,
		Status:      Available,
		Data:        data,
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// sniff extends http.DetectContentType with TIFF, which it does not know.
func sniff(data []byte) string {
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return "image/tiff"
	}
	return http.DetectContentType(data)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", ErrNotImage, err)
	}
	return buf.Bytes(), nil
}

// decodeDataURI extracts the payload of a data: URI. Only the media type and
// the base64 flag are honored; other parameters are ignored.
func decodeDataURI(ref string, maxBytes int64) ([]byte, error) {
	meta, payload, ok := strings.Cut(ref[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing comma", ErrInvalidDataURI)
	}

	var data []byte
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		if int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes {
			return nil, fmt.Errorf("%w: data URI payload", ErrTooLarge)
		}
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		data = []byte(unescaped)
	}

	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: data URI payload", ErrTooLarge)
	}
	return data, nil
}
