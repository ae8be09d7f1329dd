package align_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"cuesync/internal/align"
	"cuesync/internal/imagemeta"
	"cuesync/internal/project"
	"cuesync/internal/script"
	"gopkg.in/yaml.v3"
)

type fixedProber struct {
	dims  imagemeta.Dimensions
	err   error
	calls int
}

func (p *fixedProber) Probe(context.Context, string) (imagemeta.Dimensions, error) {
	p.calls++
	return p.dims, p.err
}

func voice(character, text string, frame, length, layer int) *project.VoiceItem {
	return &project.VoiceItem{
		ItemBase: project.ItemBase{
			Type:   project.TypeVoice,
			Layer:  layer,
			Frame:  frame,
			Length: length,
		},
		CharacterName: character,
		Serif:         text,
	}
}

func newDoc(items ...project.Item) *project.Project {
	doc := &project.Project{}
	doc.Timeline.VideoInfo = project.VideoInfo{FPS: 60, Hz: 44100, Width: 1920, Height: 1080}
	doc.Timeline.Items = items
	return doc
}

// parseCues builds cues through the script parser so engine tests exercise
// the same cue values production does.
func parseCues(t *testing.T, body string) []script.Cue {
	t.Helper()
	var lines []yaml.Node
	if err := yaml.Unmarshal([]byte(body), &lines); err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	cues, err := script.Parse(lines)
	if err != nil {
		t.Fatalf("parse script: %v", err)
	}
	return cues
}

func defaultOptions() align.Options {
	return align.Options{
		InsertionLayer: 3,
		BottomMargin:   320,
		SideMargin:     20,
		ProjectRoot:    "/proj",
	}
}

func TestRunDerivesFrameAndLength(t *testing.T) {
	doc := newDoc(
		voice("reimu", "start", 100, 10, 1),
		voice("marisa", "end", 140, 20, 1),
	)
	cues := parseCues(t, `
- text: Chapter
- reimu: start
- marisa: end
`)

	created, err := align.Run(context.Background(), doc, cues, defaultOptions())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 created item, got %d", len(created))
	}
	base := created[0].Base()
	if base.Frame != 100 {
		t.Fatalf("unexpected frame: got %d want 100", base.Frame)
	}
	if base.Length != 60 {
		t.Fatalf("unexpected length: got %d want 60", base.Length)
	}
	if base.Layer != 3 {
		t.Fatalf("unexpected layer: got %d want 3", base.Layer)
	}
}

func TestRunMatchesInOrder(t *testing.T) {
	doc := newDoc(
		voice("n", "A", 0, 10, 1),
		voice("n", "B", 10, 10, 1),
		voice("n", "C", 20, 10, 1),
		voice("n", "D", 30, 10, 1),
	)
	cues := parseCues(t, `
- text: first
- n: A
- n: B
- text: second
- n: C
- n: D
`)

	created, err := align.Run(context.Background(), doc, cues, defaultOptions())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created items, got %d", len(created))
	}
	if created[0].Base().Frame != 0 || created[1].Base().Frame != 20 {
		t.Fatalf("unexpected frames: %d, %d", created[0].Base().Frame, created[1].Base().Frame)
	}
}

func TestRunNeverBacktracks(t *testing.T) {
	doc := newDoc(
		voice("n", "A", 0, 10, 1),
		voice("n", "B", 10, 10, 1),
		voice("n", "C", 20, 10, 1),
		voice("n", "D", 30, 10, 1),
		voice("n", "E", 40, 10, 1),
	)
	// Reversed cue order: the second cue wants lines already behind the cursor.
	cues := parseCues(t, `
- text: first
- n: C
- n: D
- text: second
- n: A
- n: B
`)

	_, err := align.Run(context.Background(), doc, cues, defaultOptions())
	if !errors.Is(err, align.ErrUnmatchedCue) {
		t.Fatalf("expected ErrUnmatchedCue, got %v", err)
	}
	var unmatched *align.UnmatchedCueError
	if !errors.As(err, &unmatched) {
		t.Fatalf("expected UnmatchedCueError, got %T", err)
	}
	if unmatched.Ref.Text != "A" {
		t.Fatalf("error should identify the failing reference, got %v", unmatched.Ref)
	}
}

func TestRunSingleLineCue(t *testing.T) {
	doc := newDoc(voice("reimu", "only", 50, 25, 1))
	cues := parseCues(t, `
- text: banner
- reimu: only
`)

	created, err := align.Run(context.Background(), doc, cues, defaultOptions())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	base := created[0].Base()
	if base.Frame != 50 || base.Length != 25 {
		t.Fatalf("single-line cue should span its one item: frame=%d length=%d", base.Frame, base.Length)
	}
}

func TestRunUnmatchedEndIsFatal(t *testing.T) {
	doc := newDoc(
		voice("reimu", "start", 0, 10, 1),
	)
	cues := parseCues(t, `
- text: banner
- reimu: start
- reimu: never recorded
`)

	created, err := align.Run(context.Background(), doc, cues, defaultOptions())
	if !errors.Is(err, align.ErrUnmatchedCue) {
		t.Fatalf("expected ErrUnmatchedCue, got %v", err)
	}
	if created != nil {
		t.Fatalf("no items should be reported on failure, got %d", len(created))
	}
}

func TestRunShiftsLayersBeforeInsert(t *testing.T) {
	doc := newDoc(
		voice("n", "A", 0, 10, 1),
		voice("n", "B", 10, 10, 3),
		voice("n", "C", 20, 10, 4),
	)
	cues := parseCues(t, `
- text: banner
- n: A
`)

	if _, err := align.Run(context.Background(), doc, cues, defaultOptions()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	layers := []int{}
	for _, item := range doc.Timeline.Items {
		layers = append(layers, item.Base().Layer)
	}
	want := []int{1, 4, 5, 3} // shifted existing items, then the new banner at the insertion layer
	if len(layers) != len(want) {
		t.Fatalf("unexpected item count: %d", len(layers))
	}
	for i := range want {
		if layers[i] != want[i] {
			t.Fatalf("layer mismatch: got %v want %v", layers, want)
		}
	}
}

func TestRunDropsLeftoverCues(t *testing.T) {
	doc := newDoc(voice("n", "A", 0, 10, 1))
	cues := parseCues(t, `
- text: first
- n: A
- text: second
- n: never
`)

	created, err := align.Run(context.Background(), doc, cues, defaultOptions())
	if err != nil {
		t.Fatalf("leftover cues should not fail the run: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 created item, got %d", len(created))
	}
}

func TestRunComputesImagePlacement(t *testing.T) {
	doc := newDoc(voice("reimu", "line", 0, 10, 1))
	cues := parseCues(t, `
- image: art/cover.png
- reimu: line
`)

	prober := &fixedProber{dims: imagemeta.Dimensions{Width: 800, Height: 600}}
	opts := defaultOptions()
	opts.Prober = prober

	created, err := align.Run(context.Background(), doc, cues, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	img, ok := created[0].(*project.ImageItem)
	if !ok {
		t.Fatalf("expected image item, got %T", created[0])
	}
	if prober.calls != 1 {
		t.Fatalf("expected one dimension probe, got %d", prober.calls)
	}
	wantZoom := 100 * float64(1080-20-320) / 600
	if math.Abs(img.Zoom.From-wantZoom) > 1e-9 || img.Zoom.From != img.Zoom.To {
		t.Fatalf("unexpected zoom animation: %+v", img.Zoom)
	}
	if img.Y.From != -160 || img.Y.To != -160 {
		t.Fatalf("unexpected y animation: %+v", img.Y)
	}
	if img.FilePath != `\proj\art\cover.png` {
		t.Fatalf("unexpected file path: %q", img.FilePath)
	}
}

func TestRunFillsOnlyUnsetImageFields(t *testing.T) {
	doc := newDoc(voice("reimu", "line", 0, 10, 1))
	cues := parseCues(t, `
- image: art/cover.png
  zoom: 50
- reimu: line
`)

	prober := &fixedProber{dims: imagemeta.Dimensions{Width: 800, Height: 600}}
	opts := defaultOptions()
	opts.Prober = prober

	created, err := align.Run(context.Background(), doc, cues, opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	img := created[0].(*project.ImageItem)
	if img.Zoom.From != 50 {
		t.Fatalf("explicit zoom should win: %+v", img.Zoom)
	}
	if img.Y.From != -160 {
		t.Fatalf("unset y should still be computed: %+v", img.Y)
	}
}

func TestRunSkipsProbeWhenPlacementExplicit(t *testing.T) {
	doc := newDoc(voice("reimu", "line", 0, 10, 1))
	cues := parseCues(t, `
- image: art/cover.png
  zoom: 50
  y: -100
- reimu: line
`)

	prober := &fixedProber{err: errors.New("should not be called")}
	opts := defaultOptions()
	opts.Prober = prober

	if _, err := align.Run(context.Background(), doc, cues, opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if prober.calls != 0 {
		t.Fatalf("prober should not run with explicit placement, got %d calls", prober.calls)
	}
}

func TestRunPropagatesProbeFailure(t *testing.T) {
	doc := newDoc(voice("reimu", "line", 0, 10, 1))
	cues := parseCues(t, `
- image: art/missing.png
- reimu: line
`)

	opts := defaultOptions()
	opts.Prober = &fixedProber{err: imagemeta.ErrImageNotFound}

	if _, err := align.Run(context.Background(), doc, cues, opts); !errors.Is(err, imagemeta.ErrImageNotFound) {
		t.Fatalf("expected probe failure to propagate, got %v", err)
	}
}

func TestRunTextCueCarriesFontSize(t *testing.T) {
	doc := newDoc(voice("reimu", "line", 0, 10, 1))
	cues := parseCues(t, `
- text: Chapter One
  font_size: 72
- reimu: line
`)

	created, err := align.Run(context.Background(), doc, cues, defaultOptions())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	txt, ok := created[0].(*project.TextItem)
	if !ok {
		t.Fatalf("expected text item, got %T", created[0])
	}
	if txt.Text != "Chapter One" {
		t.Fatalf("unexpected text: %q", txt.Text)
	}
	if txt.FontSize.From != 72 {
		t.Fatalf("unexpected font size: %+v", txt.FontSize)
	}
}
