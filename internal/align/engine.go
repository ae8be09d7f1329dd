package align

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"cuesync/internal/dimcache"
	"cuesync/internal/logging"
	"cuesync/internal/project"
	"cuesync/internal/script"
	"cuesync/internal/transform"
)

// Options configures one alignment run.
type Options struct {
	// InsertionLayer is the layer every synthesized item lands on. Existing
	// items at or above it are shifted up by one first.
	InsertionLayer int
	// BottomMargin and SideMargin bound the auto-computed image placement.
	BottomMargin int
	SideMargin   int
	// ProjectRoot prefixes image file paths written into the document
	// (windows-style, the editor's convention).
	ProjectRoot string
	// ImageDir resolves relative image paths for dimension probing. Empty
	// means paths are probed as written in the script.
	ImageDir string
	// Prober looks up image pixel dimensions. Defaults to a direct probe.
	Prober dimcache.Prober
	// Logger receives per-cue progress and the leftover-cue warning.
	Logger *slog.Logger
}

// Run aligns the cue sequence against the project's voice items and appends
// one synthesized item per matched cue. On error the document must be
// discarded by the caller; it may already contain the layer shift and a
// partial append.
//
// Cues left over after the voice queue empties are dropped, matching the
// reference behavior, but a warning names each one.
func Run(ctx context.Context, doc *project.Project, cues []script.Cue, opts Options) ([]project.Item, error) {
	logger := logging.NewComponentLogger(opts.Logger, "align")
	prober := opts.Prober
	if prober == nil {
		prober = dimcache.Direct()
	}

	doc.ShiftLayers(opts.InsertionLayer)
	voices := doc.Voices()

	var created []project.Item
	ci, vi := 0, 0
	for ci < len(cues) && vi < len(voices) {
		cue := cues[ci]
		ci++
		start, end := cue.Bounds()

		for vi < len(voices) && !matches(start, voices[vi]) {
			vi++
		}
		if vi == len(voices) {
			return nil, &UnmatchedCueError{Ref: start}
		}
		startItem := voices[vi]

		for vi < len(voices) && !matches(end, voices[vi]) {
			vi++
		}
		if vi == len(voices) {
			return nil, &UnmatchedCueError{Ref: end}
		}
		endItem := voices[vi]
		vi++

		frame := startItem.Frame
		length := endItem.Frame + endItem.Length - startItem.Frame

		item, err := synthesize(ctx, cue, opts, prober, frame, length, doc.Timeline.VideoInfo)
		if err != nil {
			return nil, err
		}
		doc.Timeline.Items = append(doc.Timeline.Items, item)
		created = append(created, item)

		logger.Debug("aligned cue",
			logging.String(logging.FieldCue, cue.Label()),
			logging.Int(logging.FieldFrame, frame),
			logging.Int(logging.FieldLength, length))
	}

	for ; ci < len(cues); ci++ {
		logger.Warn("voice items exhausted; dropping cue",
			logging.String(logging.FieldCue, cues[ci].Label()))
	}

	return created, nil
}

func matches(ref script.VoiceRef, voice *project.VoiceItem) bool {
	return ref.Character == voice.CharacterName && ref.Text == voice.Serif
}

func synthesize(ctx context.Context, cue script.Cue, opts Options, prober dimcache.Prober, frame, length int, canvas project.VideoInfo) (project.Item, error) {
	layer := opts.InsertionLayer
	switch c := cue.(type) {
	case *script.ImageCue:
		zoom, y := c.Overrides()
		if zoom == nil || y == nil {
			dims, err := prober.Probe(ctx, probePath(opts.ImageDir, c.Image))
			if err != nil {
				return nil, err
			}
			placement, err := transform.Fit(dims.Width, dims.Height, canvas.Width, canvas.Height, opts.BottomMargin, opts.SideMargin)
			if err != nil {
				return nil, err
			}
			// Each field is filled independently; an explicit value for one
			// never suppresses the computed value for the other.
			if zoom == nil {
				zoom = &placement.Zoom
			}
			if y == nil {
				y = &placement.Y
			}
		}
		filePath := project.WindowsFilePath(opts.ProjectRoot, c.Image)
		return project.NewImageItem(layer, frame, length, filePath, zoom, y), nil
	case *script.TextCue:
		zoom, y := c.Overrides()
		return project.NewTextItem(layer, frame, length, c.Text, c.FontSize, zoom, y), nil
	default:
		return nil, fmt.Errorf("unsupported cue type %T", cue)
	}
}

func probePath(imageDir, image string) string {
	if imageDir == "" || filepath.IsAbs(image) {
		return image
	}
	return filepath.Join(imageDir, image)
}
