package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/bytedance/sonic"

	"github.com/redacter-man/pii-redacter/model"
)

// planWriter is a RegionMarker that accumulates boxes per page and, on
// commit, rewrites the plan file. Committing per page means a crash mid-
// document still leaves the completed pages on disk.
type planWriter struct {
	path      string
	pending   map[int][]planBox
	committed map[int][]planBox
}

type planBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

type planFile struct {
	Pages []planPage `json:"pages"`
}

type planPage struct {
	Page  int       `json:"page"`
	Boxes []planBox `json:"boxes"`
}

func newPlanWriter(path string) *planWriter {
	return &planWriter{
		path:      path,
		pending:   make(map[int][]planBox),
		committed: make(map[int][]planBox),
	}
}

func (w *planWriter) MarkRegion(pageIndex int, box model.BBox) error {
	w.pending[pageIndex] = append(w.pending[pageIndex], planBox{
		X0: box.X0, Y0: box.Y0, X1: box.X1, Y1: box.Y1,
	})
	return nil
}

func (w *planWriter) CommitPage(pageIndex int) error {
	w.committed[pageIndex] = w.pending[pageIndex]
	delete(w.pending, pageIndex)
	return w.flush()
}

func (w *planWriter) flush() error {
	indices := make([]int, 0, len(w.committed))
	for idx := range w.committed {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var out planFile
	for _, idx := range indices {
		out.Pages = append(out.Pages, planPage{Page: idx, Boxes: w.committed[idx]})
	}

	data, err := sonic.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshalling plan: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}
