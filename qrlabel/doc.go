// Package qrlabel composes annotated QR code labels: a background canvas
// with a QR code pasted onto it and text elements drawn around it.
//
// Positions and sizes accept plain numbers (pixels) or CSS-like units
// relative to the canvas: "30vw", "5vh", "0.5rem". Text can be placed at
// absolute positions or flowed into bordered list blocks with columns and
// margins, wrapping to the available width.
package qrlabel
