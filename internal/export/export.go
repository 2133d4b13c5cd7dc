// Package export renders sketch frames to image files without a window.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/sketches/internal/canvas"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) Ext() string { return "." + string(f) }

// Frame is a drawable surface that can be written to disk once drawn.
// Drawing errors are sticky and reported by Err and WriteFile.
type Frame interface {
	canvas.Surface
	canvas.ImageDrawer
	WriteFile(path string) error
	Err() error
}

func NewFrame(f Format, width, height int) (Frame, error) {
	switch f {
	case PNG:
		return NewPNG(width, height), nil
	case SVG:
		return NewSVG(width, height), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
