package qrlabel

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// listCell is one laid-out item inside a list block.
type listCell struct {
	x, y, w, h float64
	lines      []string
	face       font.Face
	color      color.RGBA
	padTop     float64
	padLeft    float64
}

// drawListBlock flows the block's items into a column grid anchored at
// StartPosition, then paints text and any configured borders.
func (g *Generator) drawListBlock(img *image.RGBA, block ListBlock, canvasW, canvasH float64) error {
	if len(block.Items) == 0 {
		return fmt.Errorf("list block has no items")
	}

	cells, boxX, boxY, boxW, boxH, err := g.layoutList(block, canvasW, canvasH)
	if err != nil {
		return err
	}

	for _, cell := range cells {
		g.drawLines(img, cell.lines, cell.face, cell.color, cell.x+cell.padLeft, cell.y+cell.padTop)
		if block.InnerBorder != nil {
			if err := g.drawBorder(img, cell.x, cell.y, cell.w, cell.h, block.InnerBorder, canvasW, canvasH); err != nil {
				return err
			}
		}
	}

	if block.OuterBorder != nil {
		if err := g.drawBorder(img, boxX, boxY, boxW, boxH, block.OuterBorder, canvasW, canvasH); err != nil {
			return err
		}
	}
	return nil
}

// layoutList computes cell geometry: items fill rows left to right across
// the configured columns; each row is as tall as its tallest item. The block
// height grows to the laid-out content when Height is unset.
func (g *Generator) layoutList(block ListBlock, canvasW, canvasH float64) ([]listCell, float64, float64, float64, float64, error) {
	boxX, boxY, err := block.StartPosition.Resolve(canvasW, canvasH)
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}

	boxW, err := g.defaultLength(block.Width, "100vw").Resolve(canvasW, canvasH)
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}
	if boxW <= 0 {
		boxW = canvasW - boxX
	}

	cols := block.Columns
	if cols < 1 {
		cols = 1
	}
	colW := boxW / float64(cols)

	blockMargin := block.Margin
	if len(blockMargin) == 0 {
		blockMargin = Margin{"0.5rem"}
	}

	cells := make([]listCell, 0, len(block.Items))
	y := boxY
	for start := 0; start < len(block.Items); start += cols {
		end := start + cols
		if end > len(block.Items) {
			end = len(block.Items)
		}

		rowH := 0.0
		row := make([]listCell, 0, cols)
		for i := start; i < end; i++ {
			item := block.Items[i]
			if item.Text == "" {
				return nil, 0, 0, 0, 0, fmt.Errorf("list item %d: text is required", i)
			}

			margin := item.Margin
			if len(margin) == 0 {
				margin = blockMargin
			}
			top, right, bottom, left, err := margin.Resolve(canvasW, canvasH)
			if err != nil {
				return nil, 0, 0, 0, 0, err
			}

			size, err := g.itemFontSize(item, canvasW, canvasH)
			if err != nil {
				return nil, 0, 0, 0, 0, err
			}
			face, err := g.face(size)
			if err != nil {
				return nil, 0, 0, 0, 0, err
			}
			col, err := ParseColor(g.defaultString(item.Color, g.defaultString(g.cfg.DefaultFontColor, "black")))
			if err != nil {
				return nil, 0, 0, 0, 0, err
			}

			wrapW := colW - left - right
			lines := []string{item.Text}
			if item.Wrap && wrapW > 0 {
				lines = wrapToWidth(face, item.Text, wrapW)
			}

			lineH := face.Metrics().Height.Ceil()
			cellH := float64(len(lines)*lineH) + top + bottom

			row = append(row, listCell{
				x:       boxX + float64(i-start)*colW,
				y:       y,
				w:       colW,
				lines:   lines,
				face:    face,
				color:   col,
				padTop:  top,
				padLeft: left,
			})
			if cellH > rowH {
				rowH = cellH
			}
		}
		for i := range row {
			row[i].h = rowH
		}
		cells = append(cells, row...)
		y += rowH
	}

	boxH := y - boxY
	if block.Height != "" {
		h, err := block.Height.Resolve(canvasW, canvasH)
		if err != nil {
			return nil, 0, 0, 0, 0, err
		}
		if h > boxH {
			boxH = h
		}
	}
	return cells, boxX, boxY, boxW, boxH, nil
}
