// Package main provides the CLI entry point for xlfill2pdf.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiwen-haochi/xlfill2pdf/qrlabel"
	"github.com/xiwen-haochi/xlfill2pdf/xlfill"
)

var (
	dataPath       string
	outPath        string
	xlsxPath       string
	fontPath       string
	fontName       string
	prefix         string
	suffix         string
	qrSuffix       string
	watermarkText  string
	watermarkAlpha float64
	watermarkAngle float64
	watermarkColor string
	pageSize       string
	portrait       bool
	verbose        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "xlfill2pdf",
		Short:         "Fill Excel templates and render them as PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	fillCmd := &cobra.Command{
		Use:   "fill [template.xlsx]",
		Short: "Fill a template's placeholders and write a PDF",
		Long: `Fill replaces {{name}} placeholders on the template's active sheet with
values from a JSON data file, resolves {{name.qrcode}} and {{name.image}}
placeholders into anchored images, and renders the sheet as a PDF.`,
		Args: cobra.ExactArgs(1),
		RunE: runFill,
	}
	fillCmd.Flags().StringVarP(&dataPath, "data", "d", "", "JSON data file (required)")
	fillCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output PDF path (default: template name with .pdf)")
	fillCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the filled workbook to this path")
	fillCmd.Flags().StringVar(&fontPath, "font", "", "TTF font file for PDF text")
	fillCmd.Flags().StringVar(&fontName, "font-name", "", "Font registration name")
	fillCmd.Flags().StringVar(&prefix, "prefix", xlfill.DefaultPrefix, "Placeholder prefix")
	fillCmd.Flags().StringVar(&suffix, "suffix", xlfill.DefaultSuffix, "Placeholder suffix")
	fillCmd.Flags().StringVar(&qrSuffix, "qr-suffix", xlfill.DefaultQRCodeSuffix, "QR code handler suffix")
	fillCmd.Flags().StringVar(&watermarkText, "watermark", "", "Watermark text")
	fillCmd.Flags().Float64Var(&watermarkAlpha, "watermark-alpha", 0.1, "Watermark opacity (0-1)")
	fillCmd.Flags().Float64Var(&watermarkAngle, "watermark-angle", -45, "Watermark rotation in degrees")
	fillCmd.Flags().StringVar(&watermarkColor, "watermark-color", "0,0,0", "Watermark color as R,G,B")
	fillCmd.Flags().StringVar(&pageSize, "page-size", "LETTER", "Page size: A3, A4, A5, LETTER, LEGAL")
	fillCmd.Flags().BoolVar(&portrait, "portrait", false, "Portrait orientation instead of landscape")
	_ = fillCmd.MarkFlagRequired("data")

	labelCmd := &cobra.Command{
		Use:   "qrlabel [layout.json]",
		Short: "Generate an annotated QR code label PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  runLabel,
	}
	labelCmd.Flags().StringVarP(&outPath, "out", "o", "label.png", "Output PNG path")
	labelCmd.Flags().StringVar(&fontPath, "font", "", "TTF font file for label text")

	rootCmd.AddCommand(fillCmd, labelCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// zapAdapter bridges zap's sugared logger into the library Logger interface.
type zapAdapter struct {
	log *zap.SugaredLogger
}

func (a zapAdapter) Debugf(format string, args ...any) { a.log.Debugf(format, args...) }
func (a zapAdapter) Infof(format string, args ...any)  { a.log.Infof(format, args...) }
func (a zapAdapter) Errorf(format string, args ...any) { a.log.Errorf(format, args...) }

func runFill(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	template := args[0]
	data, err := loadData(dataPath)
	if err != nil {
		return err
	}

	fonts := xlfill.NewFontManager()
	if fontPath != "" {
		if err := fonts.SetFont(fontPath, fontName); err != nil {
			return err
		}
	}

	color, err := parseRGB(watermarkColor)
	if err != nil {
		return err
	}

	pdfOpts := xlfill.DefaultPDFOptions()
	pdfOpts.PageSize = pageSize
	pdfOpts.Landscape = !portrait

	opts := []xlfill.Option{
		xlfill.WithDelimiters(prefix, suffix),
		xlfill.WithQRCodeSuffix(qrSuffix),
		xlfill.WithFontManager(fonts),
		xlfill.WithPDFOptions(pdfOpts),
		xlfill.WithLogger(zapAdapter{log}),
	}
	if watermarkText != "" {
		opts = append(opts, xlfill.WithWatermark(xlfill.WatermarkOptions{
			Text:  watermarkText,
			Alpha: watermarkAlpha,
			Angle: watermarkAngle,
			Color: color,
		}))
	}

	processor, err := xlfill.New(opts...)
	if err != nil {
		return err
	}

	fill, err := processor.Fill(cmd.Context(), template, data)
	if err != nil {
		return err
	}
	defer fill.Close()

	if xlsxPath != "" {
		f, err := os.Create(xlsxPath)
		if err != nil {
			return err
		}
		if err := fill.WriteXLSX(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Infof("wrote %s", xlsxPath)
	}

	out := outPath
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(template), filepath.Ext(template))
		out = base + ".pdf"
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	stats, err := processor.RenderPDF(cmd.Context(), fill, f)
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Infof("wrote %s: %d rows, %d bytes", out, stats.Rows, stats.Bytes)
	return nil
}

// labelSpec is the qrlabel layout file: QR data, generator settings and a
// list of annotation elements.
type labelSpec struct {
	Data   string        `json:"data"`
	Config labelConfig   `json:"config"`
	Elems  []elementSpec `json:"elements"`
}

type labelConfig struct {
	BackgroundSize  [2]qrlabel.Length   `json:"background_size"`
	BackgroundColor string              `json:"background_color"`
	QRSize          [2]qrlabel.Length   `json:"qr_size"`
	QRPosition      qrlabel.Point       `json:"qr_position"`
	FontSize        qrlabel.Length      `json:"default_font_size"`
	FontColor       string              `json:"default_font_color"`
	Bold            bool                `json:"default_font_bold"`
	Border          *qrlabel.BorderSpec `json:"border"`
}

type elementSpec struct {
	Text      string         `json:"text"`
	Position  qrlabel.Point  `json:"position"`
	FontSize  qrlabel.Length `json:"font_size"`
	Color     string         `json:"color"`
	Wrap      bool           `json:"text_wrap"`
	WrapWidth qrlabel.Length `json:"text_wrap_width"`
	Margin    qrlabel.Margin `json:"margin"`

	List          []elementSpec       `json:"list"`
	StartPosition qrlabel.Point       `json:"start_position"`
	Columns       int                 `json:"column"`
	Width         qrlabel.Length      `json:"width"`
	Height        qrlabel.Length      `json:"height"`
	OuterBorder   *qrlabel.BorderSpec `json:"out_border"`
	InnerBorder   *qrlabel.BorderSpec `json:"inner_border"`
}

func (e elementSpec) toElement() qrlabel.Element {
	if len(e.List) > 0 {
		items := make([]qrlabel.TextItem, 0, len(e.List))
		for _, item := range e.List {
			items = append(items, item.toTextItem())
		}
		return qrlabel.ListBlock{
			Items:         items,
			StartPosition: e.StartPosition,
			Columns:       e.Columns,
			Width:         e.Width,
			Height:        e.Height,
			Margin:        e.Margin,
			OuterBorder:   e.OuterBorder,
			InnerBorder:   e.InnerBorder,
		}
	}
	return e.toTextItem()
}

func (e elementSpec) toTextItem() qrlabel.TextItem {
	return qrlabel.TextItem{
		Text:      e.Text,
		Position:  e.Position,
		FontSize:  e.FontSize,
		Color:     e.Color,
		Wrap:      e.Wrap,
		WrapWidth: e.WrapWidth,
		Margin:    e.Margin,
	}
}

func runLabel(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var spec labelSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("parse layout %s: %w", args[0], err)
	}

	fonts := xlfill.NewFontManager()
	if fontPath != "" {
		if err := fonts.SetFont(fontPath, ""); err != nil {
			return err
		}
	}

	gen := qrlabel.New(qrlabel.Config{
		BackgroundWidth:  spec.Config.BackgroundSize[0],
		BackgroundHeight: spec.Config.BackgroundSize[1],
		BackgroundColor:  spec.Config.BackgroundColor,
		QRWidth:          spec.Config.QRSize[0],
		QRHeight:         spec.Config.QRSize[1],
		QRPosition:       spec.Config.QRPosition,
		DefaultFontSize:  spec.Config.FontSize,
		DefaultFontColor: spec.Config.FontColor,
		DefaultBold:      spec.Config.Bold,
		Border:           spec.Config.Border,
		Fonts:            fonts,
		Logger:           zapAdapter{log},
	})

	elems := make([]qrlabel.Element, 0, len(spec.Elems))
	for _, e := range spec.Elems {
		elems = append(elems, e.toElement())
	}

	if err := gen.GenerateFile(spec.Data, elems, outPath); err != nil {
		return err
	}
	log.Infof("wrote %s", outPath)
	return nil
}

func loadData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return data, nil
}

func parseRGB(s string) ([3]uint8, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]uint8{}, fmt.Errorf("color %q: expected R,G,B", s)
	}
	var rgb [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return [3]uint8{}, fmt.Errorf("color %q: component %q out of range", s, part)
		}
		rgb[i] = uint8(v)
	}
	return rgb, nil
}
