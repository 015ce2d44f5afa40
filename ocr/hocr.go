package ocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/redacter-man/pii-redacter/model"
)

// Word is one recognized word with its bounding box in image pixel space.
type Word struct {
	Text       string
	BBox       model.BBox
	Confidence float64 // 0..1, from hOCR x_wconf
}

// PageResult holds the words recognized on one page image, plus the image
// dimensions the word boxes are expressed in. Callers scale boxes from
// pixel space into host page units using these dimensions.
type PageResult struct {
	Width  float64
	Height float64
	Words  []Word
}

// ParseHOCR parses Tesseract hOCR output into words with geometry.
// hOCR is HTML: the page is a div with class "ocr_page" whose title
// carries the image bounding box, and each word is a span with class
// "ocrx_word" whose title carries the word box and confidence.
func ParseHOCR(r io.Reader) (*PageResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	result := &PageResult{}
	walkHOCR(doc, result)

	if result.Width == 0 || result.Height == 0 {
		return nil, fmt.Errorf("hOCR output has no ocr_page element")
	}
	return result, nil
}

func walkHOCR(n *html.Node, result *PageResult) {
	if n.Type == html.ElementNode {
		switch {
		case hasClass(n, "ocr_page"):
			if box, ok := titleBBox(n); ok {
				result.Width = box.X1
				result.Height = box.Y1
			}
		case hasClass(n, "ocrx_word"):
			text := strings.TrimSpace(textContent(n))
			box, ok := titleBBox(n)
			if text != "" && ok {
				result.Words = append(result.Words, Word{
					Text:       text,
					BBox:       box,
					Confidence: titleConfidence(n),
				})
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHOCR(c, result)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// titleBBox extracts the "bbox x0 y0 x1 y1" property from an hOCR title
// attribute.
func titleBBox(n *html.Node) (model.BBox, bool) {
	for _, prop := range strings.Split(attrValue(n, "title"), ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		coords := make([]float64, 4)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return model.BBox{}, false
			}
			coords[i] = v
		}
		return model.NewBBox(coords[0], coords[1], coords[2], coords[3]), true
	}
	return model.BBox{}, false
}

// titleConfidence extracts the "x_wconf N" property (0..100) from an hOCR
// title attribute, scaled to 0..1. Missing confidence reports as 0.
func titleConfidence(n *html.Node) float64 {
	for _, prop := range strings.Split(attrValue(n, "title"), ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) == 2 && fields[0] == "x_wconf" {
			if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
				return v / 100
			}
		}
	}
	return 0
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
