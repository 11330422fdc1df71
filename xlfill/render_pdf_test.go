package xlfill

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
)

// fontOrSkip skips tests that need a real TTF file when the host has none.
func fontOrSkip(t *testing.T) *FontManager {
	t.Helper()
	fm := NewFontManager()
	if fm.Path() == "" {
		t.Skip("no usable TTF font on this host")
	}
	return fm
}

func TestRenderPDFProducesDocument(t *testing.T) {
	fm := fontOrSkip(t)
	path := writeTemplate(t, map[string]string{
		"A1": "Device Report",
		"A2": "Name",
		"B2": "{{name}}",
		"A3": "Code",
		"B3": "{{device.qrcode}}",
	}, [][2]string{{"A1", "B1"}})

	p, err := New(WithFontManager(fm))
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}

	pdf, err := p.ProcessToPDF(context.Background(), path, map[string]any{
		"name":   "Pump Station 7",
		"device": "D-1001",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf header, got %q", pdf[:min(8, len(pdf))])
	}
}

func TestRenderPDFStats(t *testing.T) {
	fm := fontOrSkip(t)
	path := writeTemplate(t, map[string]string{
		"A1": "h1", "B1": "h2",
		"A2": "v1", "B2": "v2",
	}, nil)

	p, err := New(WithFontManager(fm))
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	fill, err := p.Fill(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	defer fill.Close()

	var buf bytes.Buffer
	stats, err := p.RenderPDF(context.Background(), fill, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stats.Rows != 2 || stats.Cells != 4 {
		t.Fatalf("expected 2 rows and 4 cells, got %+v", stats)
	}
	if stats.Bytes != int64(buf.Len()) || stats.Bytes == 0 {
		t.Fatalf("expected byte count %d, got %d", buf.Len(), stats.Bytes)
	}
}

func TestRenderPDFWithWatermark(t *testing.T) {
	fm := fontOrSkip(t)
	path := writeTemplate(t, map[string]string{"A1": "content"}, nil)

	p, err := New(
		WithFontManager(fm),
		WithWatermark(WatermarkOptions{
			Text:  "CONFIDENTIAL",
			Alpha: 0.7,
			Angle: -45,
			Color: [3]uint8{216, 0, 54},
		}),
	)
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}

	pdf, err := p.ProcessToPDF(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf output")
	}
}

func TestRenderPDFEmptySheet(t *testing.T) {
	fm := fontOrSkip(t)
	path := writeTemplate(t, nil, nil)

	p, err := New(WithFontManager(fm))
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	pdf, err := p.ProcessToPDF(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf output for empty sheet")
	}
}

func TestRenderPDFUnknownPageSize(t *testing.T) {
	path := writeTemplate(t, map[string]string{"A1": "x"}, nil)

	opts := DefaultPDFOptions()
	opts.PageSize = "TABLOID"
	p, err := New(WithPDFOptions(opts))
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	fill, err := p.Fill(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	defer fill.Close()

	var buf bytes.Buffer
	_, err = p.RenderPDF(context.Background(), fill, &buf)
	if err == nil {
		t.Fatalf("expected page size error")
	}
	if KindFromError(err) != KindValidation {
		t.Fatalf("expected validation kind, got %v", err)
	}
}

func TestBuildSheetGridMergedCells(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetCellStr(sheet, "A1", "Title"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellStr(sheet, "A2", "left"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellStr(sheet, "C2", "right"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.MergeCell(sheet, "A1", "C1"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	defer f.Close()

	grid, err := buildSheetGrid(&FillResult{file: f, Sheet: sheet})
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	if grid.cols != 3 {
		t.Fatalf("expected 3 columns, got %d", grid.cols)
	}
	sp, ok := grid.spanStart[[2]int{1, 1}]
	if !ok {
		t.Fatalf("expected span starting at A1")
	}
	if sp.value != "Title" || sp.endCol != 3 || sp.endRow != 1 {
		t.Fatalf("unexpected span %+v", sp)
	}
	if !grid.covered[[2]int{2, 1}] || !grid.covered[[2]int{3, 1}] {
		t.Fatalf("expected B1 and C1 covered")
	}
	if grid.covered[[2]int{1, 1}] {
		t.Fatalf("start cell must not be covered")
	}
	if grid.cellText(1, 0) != "left" || grid.cellText(1, 2) != "right" {
		t.Fatalf("unexpected grid text row: %v", grid.cells[1])
	}
}

func TestSplitWrapUnits(t *testing.T) {
	units := splitWrapUnits("hello world")
	if len(units) != 2 || units[0] != "hello " || units[1] != "world" {
		t.Fatalf("unexpected units %q", units)
	}

	// CJK text wraps per rune.
	units = splitWrapUnits("设备ab名")
	want := []string{"设", "备", "ab", "名"}
	if len(units) != len(want) {
		t.Fatalf("expected %v, got %v", want, units)
	}
	for i := range want {
		if units[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, units)
		}
	}
}
