// Package xlfill fills Excel templates with data and renders the result as
// PDF pages.
//
// Placeholder cells ({{name}} by default) are resolved through a suffix-keyed
// handler table: {{code.qrcode}} becomes an anchored QR code image,
// {{photo.image}} an anchored picture, and everything else plain text
// substitution from the data map. The filled sheet is then rasterized into a
// bordered grid with merged ranges, anchored images, and an optional tiled
// text watermark.
package xlfill
