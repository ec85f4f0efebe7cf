package qr

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
)

const (
	qrSize     = 360
	cardWidth  = 400
	cardHeight = 440
)

// Renderer draws the ID card image handed to a beneficiary: the QR matrix on
// a white card with the holder's name captioned underneath.
type Renderer struct {
	fontFace font.Face
}

// NewRenderer loads an optional TTF caption font. With an empty path the card
// is rendered without a caption.
func NewRenderer(fontPath string) (*Renderer, error) {
	r := &Renderer{}
	if fontPath == "" {
		return r, nil
	}
	raw, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read caption font: %w", err)
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse caption font: %w", err)
	}
	r.fontFace = truetype.NewFace(parsed, &truetype.Options{Size: 22})
	return r, nil
}

// RenderCard encodes the payload into a QR matrix and composes the card PNG.
func (r *Renderer) RenderCard(p Payload, caption string) ([]byte, error) {
	encoded, err := Encode(p)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(string(encoded), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr matrix: %w", err)
	}
	matrix := code.Image(qrSize)

	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(matrix, (cardWidth-qrSize)/2, 20)

	if r.fontFace != nil && caption != "" {
		dc.SetFontFace(r.fontFace)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(caption, cardWidth/2, float64(cardHeight-30), 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode card png: %w", err)
	}
	return buf.Bytes(), nil
}
