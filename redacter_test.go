package redacter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/redacter-man/pii-redacter/detect"
	"github.com/redacter-man/pii-redacter/index"
	"github.com/redacter-man/pii-redacter/model"
)

// letterPage wraps words into a raw US-letter page, assigning simple
// left-to-right boxes so every token has valid geometry.
func letterPage(words ...string) index.RawPage {
	page := index.RawPage{Width: 612, Height: 792}
	x := 50.0
	for _, w := range words {
		box := model.NewBBox(x, 100, x+40, 112)
		page.Tokens = append(page.Tokens, index.RawToken{Text: w, Rect: &box})
		x += 50
	}
	return page
}

func nativeSource(pages ...index.RawPage) *index.StaticSource {
	return &index.StaticSource{Kind: model.BackendNative, Pages: pages}
}

func TestPipelineFindsAndPlansPII(t *testing.T) {
	src := nativeSource(letterPage(
		"Customer", "SSN:", "123-45-6789", "email", "jane@example.com",
	))

	res, warnings, err := From(src).Result()
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}

	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(res.Matches), res.Matches)
	}
	if res.Matches[0].Type != model.PIISSN {
		t.Errorf("first match type = %v, want SSN", res.Matches[0].Type)
	}
	if res.Matches[1].Type != model.PIIEmail {
		t.Errorf("second match type = %v, want Email", res.Matches[1].Type)
	}

	if len(res.Marked) != 2 {
		t.Fatalf("expected 2 marked tokens, got %d", len(res.Marked))
	}
	for _, m := range res.Marked {
		if !m.Token.Detected() {
			t.Errorf("marked token %q not flagged", m.Token.Text)
		}
	}

	boxes := res.Batch[0]
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes on page 0, got %d", len(boxes))
	}
}

func TestPipelineCardAcrossShardedTokens(t *testing.T) {
	// The card number is split across four tokens; one detection must
	// mark all four.
	src := nativeSource(letterPage("Card", "1234", "5678", "9012", "3456"))

	res, _, err := From(src).Result()
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if len(res.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %v", len(res.Matches), res.Matches)
	}
	if len(res.Marked) != 4 {
		t.Fatalf("expected 4 marked tokens, got %d", len(res.Marked))
	}
	if len(res.Batch[0]) != 4 {
		t.Errorf("expected 4 boxes, got %d", len(res.Batch[0]))
	}
}

func TestPipelineCleanDocument(t *testing.T) {
	src := nativeSource(letterPage("Nothing", "sensitive", "here"))

	res, warnings, err := From(src).Result()
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}
	if len(res.Matches) != 0 || len(res.Marked) != 0 || len(res.Batch) != 0 {
		t.Errorf("clean document should yield nothing, got %+v", res)
	}
}

func TestPipelineEmptyDocument(t *testing.T) {
	_, _, err := From(nativeSource()).Result()
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestWithCatalogConfigDisablesType(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "patterns.yaml")
	if err := os.WriteFile(cfgPath, []byte("disabled:\n  - SSN\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := nativeSource(letterPage("SSN:", "123-45-6789"))
	res, _, err := From(src).WithCatalogConfig(cfgPath).Result()
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	for _, m := range res.Matches {
		if m.Type == model.PIISSN {
			t.Errorf("disabled type still matched: %v", m)
		}
	}
}

func TestWithEngineSharedAcrossRuns(t *testing.T) {
	engine := detect.NewEngine()
	for i := 0; i < 2; i++ {
		src := nativeSource(letterPage("jane@example.com"))
		res, _, err := From(src).WithEngine(engine).Result()
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		if len(res.Marked) != 1 {
			t.Errorf("run %d: expected 1 marked token, got %d", i, len(res.Marked))
		}
	}
}

// recordMarker records mark/commit calls in order.
type recordMarker struct {
	calls []string
	fail  bool
}

func (m *recordMarker) MarkRegion(pageIndex int, box model.BBox) error {
	if m.fail {
		return errors.New("mark failed")
	}
	m.calls = append(m.calls, fmt.Sprintf("mark:%d", pageIndex))
	return nil
}

func (m *recordMarker) CommitPage(pageIndex int) error {
	m.calls = append(m.calls, fmt.Sprintf("commit:%d", pageIndex))
	return nil
}

func TestRedactAppliesPlan(t *testing.T) {
	src := nativeSource(
		letterPage("SSN:", "123-45-6789"),
		letterPage("jane@example.com"),
	)

	marker := &recordMarker{}
	res, _, err := From(src).Redact(marker)
	if err != nil {
		t.Fatalf("redact failed: %v", err)
	}
	if res == nil {
		t.Fatal("expected a result")
	}

	want := []string{"mark:0", "commit:0", "mark:1", "commit:1"}
	got := strings.Join(marker.calls, ",")
	if got != strings.Join(want, ",") {
		t.Errorf("marker calls = %s, want %s", got, strings.Join(want, ","))
	}
}

func TestRedactPropagatesMarkerError(t *testing.T) {
	src := nativeSource(letterPage("jane@example.com"))

	res, _, err := From(src).Redact(&recordMarker{fail: true})
	if err == nil {
		t.Fatal("expected marker error")
	}
	if res == nil {
		t.Error("partial result should survive an apply error")
	}
}

func TestNeedsOCR(t *testing.T) {
	doc := model.NewDocument("")
	if NeedsOCR(doc) {
		t.Error("empty document should not need OCR")
	}

	doc.AddPage(model.NewPage(612, 792, model.BackendNative))
	if !NeedsOCR(doc) {
		t.Error("page without tokens should need OCR")
	}

	textDoc := MustResult(From(nativeSource(letterPage("hello"))).Result())
	if NeedsOCR(textDoc.Document) {
		t.Error("document with native tokens should not need OCR")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must returned %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
