// Package plan validates marked tokens' bounding boxes and groups them
// into per-page redaction instructions.
//
// Validation is the last line of defense before a visual redaction is
// committed: a box outside its page, or with inverted corners, is skipped
// with a warning rather than handed to the host engine, and the rest of
// the page proceeds. Boxes are grouped per page because the host engine
// commits marks once per page, after all of that page's boxes are queued.
package plan

import (
	"fmt"
	"sort"

	"github.com/redacter-man/pii-redacter/model"
	"github.com/redacter-man/pii-redacter/resolve"
)

const stage = "plan"

// RegionMarker is the contract toward the host document engine: queue a
// box for removal on a page, then commit all queued marks for that page
// at once.
type RegionMarker interface {
	MarkRegion(pageIndex int, box model.BBox) error
	CommitPage(pageIndex int) error
}

// Planner turns marked tokens into a per-page redaction batch.
type Planner struct{}

// NewPlanner creates a redaction planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan validates each marked token's box against its page dimensions and
// groups the valid boxes per page. Rejections are non-fatal: a rejected
// box means that one token is not redacted, reported as a warning with
// the page dimensions for diagnosis. No deduplication is performed beyond
// the uniqueness the resolver already guarantees.
func (p *Planner) Plan(doc *model.Document, marked []resolve.MarkedToken) (map[int][]model.BBox, []model.Warning) {
	var warnings []model.Warning
	batch := make(map[int][]model.BBox)

	for _, mt := range marked {
		if mt.PageIndex < 0 || mt.PageIndex >= len(doc.Pages) {
			warnings = append(warnings, model.Warning{
				Stage:   stage,
				Page:    mt.PageIndex,
				Message: fmt.Sprintf("marked token %q references unknown page", mt.Token.Text),
			})
			continue
		}

		page := doc.Pages[mt.PageIndex]
		box := mt.Token.BBox
		if !box.WithinPage(page.Width, page.Height) {
			warnings = append(warnings, model.Warning{
				Stage:   stage,
				Page:    mt.PageIndex,
				Message: fmt.Sprintf("box %v out of bounds for page size %.2fx%.2f; skipped", box, page.Width, page.Height),
			})
			continue
		}

		batch[mt.PageIndex] = append(batch[mt.PageIndex], box)
	}

	return batch, warnings
}

// Apply hands a planned batch to the host engine, marking every box on a
// page and committing that page once, in ascending page order. The first
// engine error aborts: partial redaction output must not be mistaken for
// a complete one.
func Apply(batch map[int][]model.BBox, marker RegionMarker) error {
	pages := make([]int, 0, len(batch))
	for pageIdx := range batch {
		pages = append(pages, pageIdx)
	}
	sort.Ints(pages)

	for _, pageIdx := range pages {
		for _, box := range batch[pageIdx] {
			if err := marker.MarkRegion(pageIdx, box); err != nil {
				return fmt.Errorf("marking region on page %d: %w", pageIdx, err)
			}
		}
		if err := marker.CommitPage(pageIdx); err != nil {
			return fmt.Errorf("committing page %d: %w", pageIdx, err)
		}
	}
	return nil
}
