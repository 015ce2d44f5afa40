package ocr

import (
	"fmt"

	"github.com/redacter-man/pii-redacter/index"
	"github.com/redacter-man/pii-redacter/model"
)

// DefaultScaleFactor is the upscale applied to page images before
// recognition.
const DefaultScaleFactor = 2.0

// PageImage is one document page rendered as an image, together with the
// host page dimensions in page units. The host dimensions, not the image
// dimensions, define the coordinate system redaction boxes end up in.
type PageImage struct {
	Data   []byte
	Width  float64
	Height float64
}

// Source adapts the local OCR client into an extraction backend. Each
// page image is upscaled, recognized, and its word boxes scaled from
// image pixel space into host page units. Tokens come out single-segment;
// the index builder assigns text indices.
type Source struct {
	client *Client
	pages  []PageImage
	scale  float64
}

// NewSource creates an OCR token source over rendered page images. The
// client is injected by the caller, who retains ownership and closes it.
func NewSource(client *Client, pages []PageImage) *Source {
	return &Source{client: client, pages: pages, scale: DefaultScaleFactor}
}

func (s *Source) Backend() model.Backend {
	return model.BackendOCR
}

// Extract recognizes every page and converts word geometry into host page
// units. Recognition failure on any page fails the document: an OCR
// backend that silently skipped pages would under-redact.
func (s *Source) Extract() ([]index.RawPage, string, error) {
	out := make([]index.RawPage, 0, len(s.pages))
	for i, page := range s.pages {
		scaled, err := ScaleForOCR(page.Data, s.scale)
		if err != nil {
			return nil, "", fmt.Errorf("page %d: %w", i, err)
		}

		result, err := s.client.RecognizeWords(scaled)
		if err != nil {
			return nil, "", fmt.Errorf("page %d: %w", i, err)
		}

		out = append(out, rawPageFromResult(result, page))
	}
	return out, "", nil
}

// rawPageFromResult scales recognized word boxes from image pixel space
// into host page units.
func rawPageFromResult(result *PageResult, page PageImage) index.RawPage {
	scaleX := page.Width / result.Width
	scaleY := page.Height / result.Height

	rp := index.RawPage{Width: page.Width, Height: page.Height}
	for _, word := range result.Words {
		box := model.NewBBox(
			word.BBox.X0*scaleX,
			word.BBox.Y0*scaleY,
			word.BBox.X1*scaleX,
			word.BBox.Y1*scaleY,
		)
		rp.Tokens = append(rp.Tokens, index.RawToken{
			Text:       word.Text,
			Rect:       &box,
			Confidence: word.Confidence,
		})
	}
	return rp
}
