package xlfill

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/signintech/gopdf"
	"github.com/xuri/excelize/v2"
)

// pdfPageSizesPoints maps page size names to portrait dimensions in points.
var pdfPageSizesPoints = map[string]struct {
	width  float64
	height float64
}{
	"A3":     {width: 842, height: 1191},
	"A4":     {width: 595, height: 842},
	"A5":     {width: 420, height: 595},
	"LETTER": {width: 612, height: 792},
	"LEGAL":  {width: 612, height: 1008},
}

const (
	cellPadding   = 2
	minColWidth   = 24
	gridLineWidth = 0.5
	lineHeightPct = 1.25
)

// span describes a merged cell range, 1-based inclusive.
type span struct {
	startCol, startRow int
	endCol, endRow     int
	value              string
}

// sheetGrid is the resolved drawing model of one sheet: text grid, merged
// spans and image placements.
type sheetGrid struct {
	cells      [][]string
	cols       int
	spans      []span
	spanStart  map[[2]int]*span
	covered    map[[2]int]bool
	placements map[[2]int]*Placement
}

// RenderPDF rasterizes the filled sheet into PDF pages written to w. The
// sheet becomes a bordered grid: grey header row, centered wrapped text,
// merged ranges drawn as single boxes, anchored images drawn inside their
// cells, and the configured watermark stamped across every page.
func (p *Processor) RenderPDF(ctx context.Context, fill *FillResult, w io.Writer) (RenderStats, error) {
	if err := ctx.Err(); err != nil {
		return RenderStats{}, err
	}

	size, ok := pdfPageSizesPoints[strings.ToUpper(p.pdf.PageSize)]
	if !ok {
		return RenderStats{}, NewError(KindValidation, fmt.Sprintf("unknown page size %q", p.pdf.PageSize), nil)
	}
	pageW, pageH := size.width, size.height
	if p.pdf.Landscape {
		pageW, pageH = pageH, pageW
	}
	margin := p.pdf.Margin
	contentW := pageW - 2*margin
	if contentW <= 0 {
		return RenderStats{}, NewError(KindValidation, "margins exceed page width", nil)
	}

	grid, err := buildSheetGrid(fill)
	if err != nil {
		return RenderStats{}, err
	}

	fontData, err := p.fonts.Bytes()
	if err != nil {
		return RenderStats{}, err
	}
	fontName := p.fonts.Name()

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: pageW, H: pageH}, Unit: gopdf.UnitPT})
	if err := pdf.AddTTFFontData(fontName, fontData); err != nil {
		return RenderStats{}, NewError(KindFont, fmt.Sprintf("register font %q", fontName), err)
	}
	if err := pdf.SetFont(fontName, "", p.pdf.FontSize); err != nil {
		return RenderStats{}, NewError(KindFont, fmt.Sprintf("select font %q", fontName), err)
	}
	pdf.AddPage()

	colWidths := p.columnWidths(pdf, grid, contentW)
	rowHeights := p.rowHeights(pdf, grid, colWidths)

	stats := RenderStats{}
	y := margin
	for r := 0; r < len(grid.cells); r++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if y+rowHeights[r] > pageH-margin && y > margin {
			if err := p.stampWatermark(pdf, pageW, pageH); err != nil {
				return stats, err
			}
			pdf.AddPage()
			y = margin
		}

		x := margin
		for c := 0; c < grid.cols; c++ {
			key := [2]int{c + 1, r + 1}
			if grid.covered[key] {
				x += colWidths[c]
				continue
			}

			cellW, cellH := colWidths[c], rowHeights[r]
			text := grid.cellText(r, c)
			if sp, ok := grid.spanStart[key]; ok {
				cellW, cellH = spanRect(sp, colWidths, rowHeights)
				text = sp.value
			}

			header := r == 0 && p.pdf.HeaderFill
			if err := p.drawCell(pdf, x, y, cellW, cellH, text, header); err != nil {
				return stats, err
			}
			if pl, ok := grid.placements[key]; ok {
				if err := drawPlacement(pdf, pl, x, y, cellW, cellH); err != nil {
					return stats, err
				}
			}
			stats.Cells++
			x += colWidths[c]
		}
		stats.Rows++
		y += rowHeights[r]
	}

	if err := p.stampWatermark(pdf, pageW, pageH); err != nil {
		return stats, err
	}

	n, err := pdf.WriteTo(w)
	if err != nil {
		return stats, NewError(KindRender, "write pdf", err)
	}
	stats.Bytes = n
	return stats, nil
}

// buildSheetGrid reads the filled sheet back into a drawing model. Merged
// ranges keep their value at the start cell; covered cells go blank. The grid
// always has at least one cell so an empty sheet still yields a page.
func buildSheetGrid(fill *FillResult) (*sheetGrid, error) {
	rows, err := fill.file.GetRows(fill.Sheet)
	if err != nil {
		return nil, NewError(KindInternal, fmt.Sprintf("read sheet %q", fill.Sheet), err)
	}

	grid := &sheetGrid{
		cells:      rows,
		spanStart:  make(map[[2]int]*span),
		covered:    make(map[[2]int]bool),
		placements: make(map[[2]int]*Placement),
	}
	for _, row := range rows {
		if len(row) > grid.cols {
			grid.cols = len(row)
		}
	}

	merged, err := fill.file.GetMergeCells(fill.Sheet)
	if err != nil {
		return nil, NewError(KindInternal, fmt.Sprintf("merge cells of %q", fill.Sheet), err)
	}
	for _, mc := range merged {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, NewError(KindInternal, "merge range start", err)
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, NewError(KindInternal, "merge range end", err)
		}
		sp := &span{startCol: startCol, startRow: startRow, endCol: endCol, endRow: endRow, value: mc.GetCellValue()}
		grid.spans = append(grid.spans, *sp)
		grid.spanStart[[2]int{startCol, startRow}] = sp
		for r := startRow; r <= endRow; r++ {
			for c := startCol; c <= endCol; c++ {
				if r == startRow && c == startCol {
					continue
				}
				grid.covered[[2]int{c, r}] = true
			}
		}
		if endCol > grid.cols {
			grid.cols = endCol
		}
		if endRow > len(grid.cells) {
			grid.cells = padRows(grid.cells, endRow)
		}
	}

	for i := range fill.Placements {
		pl := &fill.Placements[i]
		grid.placements[[2]int{pl.Col, pl.Row}] = pl
		if pl.Col > grid.cols {
			grid.cols = pl.Col
		}
		if pl.Row > len(grid.cells) {
			grid.cells = padRows(grid.cells, pl.Row)
		}
	}

	if grid.cols == 0 {
		grid.cols = 1
	}
	if len(grid.cells) == 0 {
		grid.cells = [][]string{{""}}
	}
	return grid, nil
}

func padRows(rows [][]string, n int) [][]string {
	for len(rows) < n {
		rows = append(rows, nil)
	}
	return rows
}

func (g *sheetGrid) cellText(rowIdx, colIdx int) string {
	if rowIdx >= len(g.cells) || colIdx >= len(g.cells[rowIdx]) {
		return ""
	}
	return g.cells[rowIdx][colIdx]
}

func spanRect(sp *span, colWidths, rowHeights []float64) (float64, float64) {
	var w, h float64
	for c := sp.startCol; c <= sp.endCol && c <= len(colWidths); c++ {
		w += colWidths[c-1]
	}
	for r := sp.startRow; r <= sp.endRow && r <= len(rowHeights); r++ {
		h += rowHeights[r-1]
	}
	return w, h
}

// columnWidths sizes columns from their widest content, then scales the set
// to span the available width exactly.
func (p *Processor) columnWidths(pdf *gopdf.GoPdf, grid *sheetGrid, contentW float64) []float64 {
	widths := make([]float64, grid.cols)
	for c := 0; c < grid.cols; c++ {
		widths[c] = minColWidth
	}

	for r := range grid.cells {
		for c := 0; c < grid.cols && c < len(grid.cells[r]); c++ {
			if grid.covered[[2]int{c + 1, r + 1}] {
				continue
			}
			text := grid.cells[r][c]
			if sp, ok := grid.spanStart[[2]int{c + 1, r + 1}]; ok && sp.endCol > sp.startCol {
				// Span text sizes against the whole range, not one column.
				continue
			}
			if text == "" {
				continue
			}
			tw, err := pdf.MeasureTextWidth(text)
			if err != nil {
				continue
			}
			if w := tw + 2*cellPadding; w > widths[c] {
				widths[c] = w
			}
		}
	}
	for key, pl := range grid.placements {
		c := key[0] - 1
		if c < len(widths) && pl.Width+2*cellPadding > widths[c] {
			widths[c] = pl.Width + 2*cellPadding
		}
	}

	var total float64
	for _, w := range widths {
		total += w
	}
	if total <= 0 {
		return widths
	}
	scale := contentW / total
	for c := range widths {
		widths[c] *= scale
	}
	return widths
}

// rowHeights sizes rows from wrapped text line counts and anchored images.
// A merged span taller than its rows grows the span's last row.
func (p *Processor) rowHeights(pdf *gopdf.GoPdf, grid *sheetGrid, colWidths []float64) []float64 {
	lineH := p.pdf.FontSize * lineHeightPct
	minH := lineH + 2*cellPadding

	heights := make([]float64, len(grid.cells))
	for r := range grid.cells {
		heights[r] = minH
		for c := 0; c < grid.cols && c < len(grid.cells[r]); c++ {
			key := [2]int{c + 1, r + 1}
			if grid.covered[key] {
				continue
			}
			if _, ok := grid.spanStart[key]; ok {
				continue
			}
			text := grid.cells[r][c]
			if text == "" {
				continue
			}
			lines := wrapText(pdf, text, colWidths[c]-2*cellPadding)
			if h := float64(len(lines))*lineH + 2*cellPadding; h > heights[r] {
				heights[r] = h
			}
		}
		for key, pl := range grid.placements {
			if key[1] == r+1 {
				if h := pl.Height + 2*cellPadding; h > heights[r] {
					heights[r] = h
				}
			}
		}
	}

	for _, sp := range grid.spans {
		if sp.value == "" || sp.startRow > len(heights) {
			continue
		}
		spanW, _ := spanRect(&sp, colWidths, heights)
		lines := wrapText(pdf, sp.value, spanW-2*cellPadding)
		need := float64(len(lines))*lineH + 2*cellPadding

		var have float64
		last := sp.endRow
		if last > len(heights) {
			last = len(heights)
		}
		for r := sp.startRow; r <= last; r++ {
			have += heights[r-1]
		}
		if need > have {
			heights[last-1] += need - have
		}
	}
	return heights
}

// drawCell paints the border box and centered wrapped text for one cell.
func (p *Processor) drawCell(pdf *gopdf.GoPdf, x, y, w, h float64, text string, header bool) error {
	pdf.SetLineWidth(gridLineWidth)
	pdf.SetStrokeColor(0, 0, 0)

	if header {
		pdf.SetFillColor(128, 128, 128)
		pdf.RectFromUpperLeftWithStyle(x, y, w, h, "FD")
		pdf.SetTextColor(245, 245, 245)
	} else {
		pdf.RectFromUpperLeftWithStyle(x, y, w, h, "D")
		pdf.SetTextColor(0, 0, 0)
	}

	if text == "" {
		return nil
	}

	lineH := p.pdf.FontSize * lineHeightPct
	lines := wrapText(pdf, text, w-2*cellPadding)
	textH := float64(len(lines)) * lineH
	startY := y + (h-textH)/2
	if startY < y+cellPadding {
		startY = y + cellPadding
	}

	for i, line := range lines {
		tw, err := pdf.MeasureTextWidth(line)
		if err != nil {
			return NewError(KindRender, "measure text", err)
		}
		tx := x + (w-tw)/2
		if tx < x+cellPadding {
			tx = x + cellPadding
		}
		pdf.SetXY(tx, startY+float64(i)*lineH)
		if err := pdf.Cell(nil, line); err != nil {
			return NewError(KindRender, fmt.Sprintf("draw text %q", line), err)
		}
	}
	return nil
}

// drawPlacement draws an anchored image centered in its cell box, scaled
// down to fit when the box is smaller than the image.
func drawPlacement(pdf *gopdf.GoPdf, pl *Placement, x, y, w, h float64) error {
	imgW, imgH := pl.Width, pl.Height
	if imgW <= 0 || imgH <= 0 {
		return nil
	}

	maxW, maxH := w-2*cellPadding, h-2*cellPadding
	if scale := minFloat(maxW/imgW, maxH/imgH); scale < 1 {
		imgW *= scale
		imgH *= scale
	}

	holder, err := gopdf.ImageHolderByBytes(pl.Image)
	if err != nil {
		return NewError(KindRender, fmt.Sprintf("image at %s", pl.Axis), err)
	}
	ix := x + (w-imgW)/2
	iy := y + (h-imgH)/2
	if err := pdf.ImageByHolder(holder, ix, iy, &gopdf.Rect{W: imgW, H: imgH}); err != nil {
		return NewError(KindRender, fmt.Sprintf("draw image at %s", pl.Axis), err)
	}
	return nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// wrapText breaks text into lines no wider than maxW, splitting on spaces
// when possible and on runes otherwise (CJK text has no spaces to split on).
func wrapText(pdf *gopdf.GoPdf, text string, maxW float64) []string {
	if text == "" {
		return nil
	}
	if maxW <= 0 {
		return []string{text}
	}
	if tw, err := pdf.MeasureTextWidth(text); err != nil || tw <= maxW {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range splitWrapUnits(text) {
		candidate := current.String() + word
		tw, err := pdf.MeasureTextWidth(candidate)
		if err == nil && tw <= maxW {
			current.WriteString(word)
			continue
		}
		if current.Len() > 0 {
			lines = append(lines, strings.TrimRight(current.String(), " "))
			current.Reset()
		}
		current.WriteString(strings.TrimLeft(word, " "))
	}
	if current.Len() > 0 {
		lines = append(lines, strings.TrimRight(current.String(), " "))
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// splitWrapUnits yields wrap candidates: space-delimited words for scripts
// that use spaces, and individual runes otherwise.
func splitWrapUnits(text string) []string {
	var units []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			units = append(units, word.String())
			word.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == ' ':
			word.WriteRune(r)
			flush()
		case r < 0x2E80:
			word.WriteRune(r)
		default:
			// Wide scripts wrap per rune.
			flush()
			units = append(units, string(r))
		}
	}
	flush()
	return units
}
