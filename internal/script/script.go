package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedScript marks scripts whose cue markers cannot be bounded by
// voice lines.
var ErrMalformedScript = errors.New("malformed script")

// VoiceRef identifies a spoken line by exact character and trimmed-text
// equality. No fuzzy matching is performed anywhere in the pipeline.
type VoiceRef struct {
	Character string
	Text      string
}

func (r VoiceRef) String() string {
	return fmt.Sprintf("%s: %q", r.Character, r.Text)
}

// Cue is a script-authored request for a new visual timeline item, bounded
// by the voice lines that should anchor its start and end.
type Cue interface {
	// Bounds returns the start and end voice references. Both are populated
	// on every Cue produced by Parse.
	Bounds() (start, end VoiceRef)
	// Label names the cue for diagnostics (image path or overlay text).
	Label() string

	base() *cueBase
}

type cueBase struct {
	Zoom  *float64 `yaml:"zoom"`
	Y     *float64 `yaml:"y"`
	start *VoiceRef
	end   *VoiceRef
}

func (b *cueBase) Bounds() (VoiceRef, VoiceRef) { return *b.start, *b.end }
func (b *cueBase) base() *cueBase               { return b }

// ImageCue requests an image overlay. Zoom and Y are optional; unset values
// are computed from the image dimensions during alignment.
type ImageCue struct {
	cueBase `yaml:",inline"`
	Image   string `yaml:"image"`
}

func (c *ImageCue) Label() string { return c.Image }

// Overrides returns the explicit zoom and vertical-offset values, either of
// which may be nil.
func (c *ImageCue) Overrides() (zoom, y *float64) { return c.Zoom, c.Y }

// TextCue requests a text overlay.
type TextCue struct {
	cueBase  `yaml:",inline"`
	Text     string   `yaml:"text"`
	FontSize *float64 `yaml:"font_size"`
}

func (c *TextCue) Label() string { return c.Text }

// Overrides returns the explicit zoom and vertical-offset values, either of
// which may be nil.
func (c *TextCue) Overrides() (zoom, y *float64) { return c.Zoom, c.Y }

// Load reads and parses a script file.
func Load(path string) ([]Cue, error) {
	lines, err := loadLines(path)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Parse walks the script lines in order and produces the cue sequence.
//
// A cue collects the first voice line after its marker as the start bound and
// the last voice line before the next marker (or end of script) as the end
// bound; with no trailing line the end bound defaults to the start. Voice
// lines before the first marker are ignored.
func Parse(lines []yaml.Node) ([]Cue, error) {
	var (
		cues    []Cue
		current Cue
		pending *VoiceRef
	)

	finalize := func() error {
		base := current.base()
		if base.end == nil {
			base.end = pending
		}
		if base.end == nil {
			base.end = base.start
		}
		if base.start == nil || base.end == nil {
			return fmt.Errorf("%w: cue %q has no bounding voice line", ErrMalformedScript, current.Label())
		}
		cues = append(cues, current)
		return nil
	}

	for i := range lines {
		line := &lines[i]
		if line.Kind != yaml.MappingNode {
			continue
		}
		if cue, ok, err := decodeCueMarker(line); err != nil {
			return nil, err
		} else if ok {
			if current != nil {
				if err := finalize(); err != nil {
					return nil, err
				}
			}
			current = cue
			pending = nil
			continue
		}
		if current == nil {
			continue
		}
		ref, ok := decodeVoiceLine(line)
		if !ok {
			continue
		}
		if current.base().start == nil {
			current.base().start = &ref
			continue
		}
		pending = &ref
	}

	if current != nil {
		if err := finalize(); err != nil {
			return nil, err
		}
	}
	return cues, nil
}

// ExtractVoices returns every spoken line in script order, skipping cue
// markers and plain strings. Text is trimmed the same way matching trims it.
func ExtractVoices(path string) ([]VoiceRef, error) {
	lines, err := loadLines(path)
	if err != nil {
		return nil, err
	}
	var refs []VoiceRef
	for i := range lines {
		line := &lines[i]
		if line.Kind != yaml.MappingNode || hasCueKey(line) {
			continue
		}
		if ref, ok := decodeVoiceLine(line); ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func loadLines(path string) ([]yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var lines []yaml.Node
	if err := yaml.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return lines, nil
}

func hasCueKey(line *yaml.Node) bool {
	for i := 0; i+1 < len(line.Content); i += 2 {
		key := line.Content[i].Value
		if key == "image" || key == "text" {
			return true
		}
	}
	return false
}

func decodeCueMarker(line *yaml.Node) (Cue, bool, error) {
	for i := 0; i+1 < len(line.Content); i += 2 {
		switch line.Content[i].Value {
		case "image":
			cue := &ImageCue{}
			if err := line.Decode(cue); err != nil {
				return nil, false, fmt.Errorf("%w: %v", ErrMalformedScript, err)
			}
			return cue, true, nil
		case "text":
			cue := &TextCue{}
			if err := line.Decode(cue); err != nil {
				return nil, false, fmt.Errorf("%w: %v", ErrMalformedScript, err)
			}
			return cue, true, nil
		}
	}
	return nil, false, nil
}

// decodeVoiceLine interprets a non-marker mapping as {character: text},
// taking the first pair when more than one is present.
func decodeVoiceLine(line *yaml.Node) (VoiceRef, bool) {
	if len(line.Content) < 2 {
		return VoiceRef{}, false
	}
	key := line.Content[0]
	value := line.Content[1]
	if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
		return VoiceRef{}, false
	}
	return VoiceRef{
		Character: key.Value,
		Text:      strings.TrimSpace(value.Value),
	}, true
}
