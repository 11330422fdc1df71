package xlfill

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
)

// maxImageWidth caps the rendered width of anchored images; taller images
// keep their aspect ratio.
const maxImageWidth = 100

// handleQRCode is the default handler behind the QR code suffix. It encodes
// the data value for the field and anchors a square QR image at the cell.
func (p *Processor) handleQRCode(ctx context.Context, cell *Cell, fieldName, fieldValue string, data map[string]any) (*HandlerResult, error) {
	value, ok := data[fieldName]
	if !ok {
		return nil, NewError(KindNotFound, fmt.Sprintf("qr code field %q missing from data", fieldName), nil)
	}

	img, err := EncodeQRCode(fmt.Sprint(value), defaultPlacementSize)
	if err != nil {
		return nil, err
	}

	return &HandlerResult{
		Image:     img,
		Width:     defaultPlacementSize,
		Height:    defaultPlacementSize,
		ClearCell: true,
	}, nil
}

// handleImage is the default handler behind the image suffix. The data value
// may be raw bytes, a local file path, or an http(s) URL. The decoded image
// is scaled down to maxImageWidth, preserving aspect ratio.
func (p *Processor) handleImage(ctx context.Context, cell *Cell, fieldName, fieldValue string, data map[string]any) (*HandlerResult, error) {
	value, ok := data[fieldName]
	if !ok {
		return nil, NewError(KindNotFound, fmt.Sprintf("image field %q missing from data", fieldName), nil)
	}

	raw, err := p.imageBytes(ctx, value)
	if err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, NewError(KindValidation, fmt.Sprintf("decode image for %q", fieldName), err)
	}

	bounds := src.Bounds()
	width, height := float64(bounds.Dx()), float64(bounds.Dy())
	if width <= 0 || height <= 0 {
		return nil, NewError(KindValidation, fmt.Sprintf("empty image for %q", fieldName), nil)
	}
	if width > maxImageWidth {
		scaled := imaging.Resize(src, maxImageWidth, 0, imaging.Lanczos)
		src = scaled
		height = height * maxImageWidth / width
		width = maxImageWidth
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, NewError(KindRender, fmt.Sprintf("re-encode image for %q", fieldName), err)
	}

	return &HandlerResult{
		Image:     buf.Bytes(),
		Width:     width,
		Height:    height,
		ClearCell: true,
	}, nil
}

func (p *Processor) imageBytes(ctx context.Context, value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		if isRemote(v) {
			return p.fetchBytes(ctx, v)
		}
		data, err := os.ReadFile(filepath.Clean(v))
		if err != nil {
			return nil, NewError(KindNotFound, fmt.Sprintf("image file %q", v), err)
		}
		return data, nil
	default:
		return nil, NewError(KindValidation, fmt.Sprintf("unsupported image value type %T", value), nil)
	}
}
