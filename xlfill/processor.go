package xlfill

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// Processor fills spreadsheet templates and renders them as PDF pages.
// Placeholder cells are matched against registered handler suffixes first;
// cells with no handler match fall back to plain text substitution from the
// data map.
type Processor struct {
	prefix       string
	suffix       string
	qrcodeSuffix string
	useDefaults  bool
	watermark    WatermarkOptions
	pdf          PDFOptions
	fonts        *FontManager
	registry     *HandlerRegistry
	log          Logger
	client       *http.Client
}

// New creates a Processor. Unless disabled, the QR code and image handlers
// are registered under their default suffixes.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		prefix:       DefaultPrefix,
		suffix:       DefaultSuffix,
		qrcodeSuffix: DefaultQRCodeSuffix,
		useDefaults:  true,
		pdf:          DefaultPDFOptions(),
		registry:     NewHandlerRegistry(),
		log:          nopLogger{},
		client:       &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.prefix == "" || p.suffix == "" {
		return nil, NewError(KindValidation, "placeholder prefix and suffix are required", nil)
	}
	if p.fonts == nil {
		p.fonts = NewFontManager()
	}

	if p.useDefaults {
		if err := p.registry.Register(p.qrcodeSuffix, p.handleQRCode); err != nil {
			return nil, err
		}
		if err := p.registry.Register(DefaultImageSuffix, p.handleImage); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RegisterHandler adds a custom handler for a placeholder suffix.
func (p *Processor) RegisterHandler(suffix string, handler HandlerFunc) error {
	return p.registry.Register(suffix, handler)
}

// Fonts returns the processor's font manager.
func (p *Processor) Fonts() *FontManager {
	return p.fonts
}

// FillResult holds the filled workbook and the image placements recorded
// during the fill pass.
type FillResult struct {
	file       *excelize.File
	Sheet      string
	Placements []Placement
	Replaced   int
}

// File exposes the filled workbook.
func (r *FillResult) File() *excelize.File {
	return r.file
}

// WriteXLSX writes the filled workbook.
func (r *FillResult) WriteXLSX(w io.Writer) error {
	if err := r.file.Write(w); err != nil {
		return NewError(KindRender, "write xlsx", err)
	}
	return nil
}

// Close releases the underlying workbook.
func (r *FillResult) Close() error {
	return r.file.Close()
}

// Fill loads a template from a local path or http(s) URL and resolves every
// placeholder on the active sheet.
func (p *Processor) Fill(ctx context.Context, src string, data map[string]any) (*FillResult, error) {
	file, err := p.loadWorkbook(ctx, src)
	if err != nil {
		return nil, err
	}

	result, err := p.fillWorkbook(ctx, file, data)
	if err != nil {
		file.Close()
		return nil, err
	}
	return result, nil
}

func (p *Processor) fillWorkbook(ctx context.Context, file *excelize.File, data map[string]any) (*FillResult, error) {
	sheet := file.GetSheetName(file.GetActiveSheetIndex())
	if sheet == "" {
		return nil, NewError(KindValidation, "workbook has no active sheet", nil)
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, NewError(KindInternal, fmt.Sprintf("read sheet %q", sheet), err)
	}

	result := &FillResult{file: file, Sheet: sheet}
	suffixes := p.registry.Suffixes()

	for rowIdx, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			tok, ok := matchToken(value, p.prefix, p.suffix, suffixes)
			if !ok {
				continue
			}

			axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, NewError(KindInternal, "cell coordinates", err)
			}

			if tok.HandlerSuffix == "" {
				replacement, ok := data[tok.Value]
				if !ok {
					p.log.Debugf("no data for placeholder %q at %s", tok.Value, axis)
					continue
				}
				if err := file.SetCellStr(sheet, axis, fmt.Sprint(replacement)); err != nil {
					return nil, NewError(KindInternal, fmt.Sprintf("set cell %s", axis), err)
				}
				result.Replaced++
				continue
			}

			handler, ok := p.registry.Resolve(tok.HandlerSuffix)
			if !ok {
				continue
			}
			cell := &Cell{Sheet: sheet, Axis: axis, Col: colIdx + 1, Row: rowIdx + 1, Value: value}
			res, err := handler(ctx, cell, tok.Field, tok.Value, data)
			if err != nil {
				return nil, err
			}
			if res == nil {
				continue
			}
			if err := p.applyResult(file, result, cell, res); err != nil {
				return nil, err
			}
			result.Replaced++
		}
	}

	p.log.Infof("filled sheet %q: %d placeholders, %d placements",
		sheet, result.Replaced, len(result.Placements))
	return result, nil
}

// applyResult writes a handler result back into the workbook. Images are
// anchored at the cell and the hosting column and row are resized to fit.
func (p *Processor) applyResult(file *excelize.File, result *FillResult, cell *Cell, res *HandlerResult) error {
	sheet := cell.Sheet

	if len(res.Image) > 0 {
		width := res.Width
		if width <= 0 {
			width = defaultPlacementSize
		}
		height := res.Height
		if height <= 0 {
			height = defaultPlacementSize
		}

		if err := file.AddPictureFromBytes(sheet, cell.Axis, &excelize.Picture{
			Extension: ".png",
			File:      res.Image,
			Format:    &excelize.GraphicOptions{Positioning: "oneCell"},
		}); err != nil {
			return NewError(KindRender, fmt.Sprintf("anchor image at %s", cell.Axis), err)
		}
		if err := file.SetCellStr(sheet, cell.Axis, ""); err != nil {
			return NewError(KindInternal, fmt.Sprintf("clear cell %s", cell.Axis), err)
		}
		if styleID, err := file.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}); err == nil {
			_ = file.SetCellStyle(sheet, cell.Axis, cell.Axis, styleID)
		}

		colName, err := excelize.ColumnNumberToName(cell.Col)
		if err != nil {
			return NewError(KindInternal, "column name", err)
		}
		if err := file.SetColWidth(sheet, colName, colName, width*colWidthPerPixel); err != nil {
			return NewError(KindInternal, fmt.Sprintf("resize column %s", colName), err)
		}
		if err := file.SetRowHeight(sheet, cell.Row, height*rowHeightPerPixel); err != nil {
			return NewError(KindInternal, fmt.Sprintf("resize row %d", cell.Row), err)
		}

		result.Placements = append(result.Placements, Placement{
			Axis:   cell.Axis,
			Col:    cell.Col,
			Row:    cell.Row,
			Image:  res.Image,
			Width:  width,
			Height: height,
		})
		return nil
	}

	if res.ClearCell {
		if err := file.SetCellStr(sheet, cell.Axis, ""); err != nil {
			return NewError(KindInternal, fmt.Sprintf("clear cell %s", cell.Axis), err)
		}
		return nil
	}
	if err := file.SetCellStr(sheet, cell.Axis, res.Text); err != nil {
		return NewError(KindInternal, fmt.Sprintf("set cell %s", cell.Axis), err)
	}
	return nil
}

// ProcessToPDF fills the template and renders the active sheet as PDF bytes.
func (p *Processor) ProcessToPDF(ctx context.Context, src string, data map[string]any) ([]byte, error) {
	fill, err := p.Fill(ctx, src, data)
	if err != nil {
		return nil, err
	}
	defer fill.Close()

	var buf bytes.Buffer
	if _, err := p.RenderPDF(ctx, fill, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
