package xlfill

import (
	"github.com/signintech/gopdf"
)

// watermarkFontSize matches the stamp size used for the tiled text.
const watermarkFontSize = 60

// stampWatermark tiles rotated translucent text across the current page.
// The grid is spaced at twice the string width horizontally and twice the
// font size vertically, overdrawing the page edges so rotation leaves no
// bare corners.
func (p *Processor) stampWatermark(pdf *gopdf.GoPdf, pageW, pageH float64) error {
	wm := p.watermark
	if wm.Text == "" {
		return nil
	}

	fontName := p.fonts.Name()
	if err := pdf.SetFont(fontName, "", watermarkFontSize); err != nil {
		return NewError(KindFont, "select watermark font", err)
	}
	defer func() {
		_ = pdf.SetFont(fontName, "", p.pdf.FontSize)
		pdf.SetTextColor(0, 0, 0)
	}()

	pdf.SetTextColor(wm.Color[0], wm.Color[1], wm.Color[2])
	if err := pdf.SetTransparency(gopdf.Transparency{
		Alpha:         wm.Alpha,
		BlendModeType: gopdf.NormalBlendMode,
	}); err != nil {
		return NewError(KindRender, "watermark transparency", err)
	}
	defer pdf.ClearTransparency()

	textW, err := pdf.MeasureTextWidth(wm.Text)
	if err != nil || textW <= 0 {
		textW = watermarkFontSize * float64(len(wm.Text))
	}
	xSpacing := textW * 2
	ySpacing := float64(watermarkFontSize) * 2

	for y := 0.0; y < pageH*1.5; y += ySpacing {
		for x := 0.0; x < pageW*1.5; x += xSpacing {
			pdf.Rotate(wm.Angle, x, y)
			pdf.SetXY(x, y)
			if err := pdf.Cell(nil, wm.Text); err != nil {
				pdf.RotateReset()
				return NewError(KindRender, "draw watermark", err)
			}
			pdf.RotateReset()
		}
	}
	return nil
}
