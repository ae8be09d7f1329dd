package project

import (
	"encoding/json"
	"fmt"
	"maps"
)

// VideoInfo describes the target canvas: frame rate, audio sample rate, and
// pixel dimensions.
type VideoInfo struct {
	FPS    int `json:"FPS"`
	Hz     int `json:"Hz"`
	Width  int `json:"Width"`
	Height int `json:"Height"`
}

// Timeline holds the ordered item list and the canvas description. Layer
// settings, the vertical guide, current frame, and the rest of the editor
// state pass through in Extra.
type Timeline struct {
	VideoInfo VideoInfo
	Items     []Item
	Extra     Fields
}

// Project is the root of the document. Character definitions and any other
// top-level sections pass through in Extra.
type Project struct {
	Timeline Timeline
	Extra    Fields
}

// Voices returns the timeline's voice items in authoring order. The returned
// slice shares the underlying items; it is the alignment engine's match
// queue.
func (p *Project) Voices() []*VoiceItem {
	var voices []*VoiceItem
	for _, item := range p.Timeline.Items {
		if voice, ok := item.(*VoiceItem); ok {
			voices = append(voices, voice)
		}
	}
	return voices
}

// ShiftLayers increments the layer of every item at or above the given
// layer, opening a free layer for new items.
func (p *Project) ShiftLayers(layer int) {
	for _, item := range p.Timeline.Items {
		if base := item.Base(); base.Layer >= layer {
			base.Layer++
		}
	}
}

func (tl *Timeline) UnmarshalJSON(data []byte) error {
	var raw Fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if value, ok := raw["VideoInfo"]; ok {
		if err := json.Unmarshal(value, &tl.VideoInfo); err != nil {
			return fmt.Errorf("timeline video info: %w", err)
		}
		delete(raw, "VideoInfo")
	}
	if value, ok := raw["Items"]; ok {
		var elements []json.RawMessage
		if err := json.Unmarshal(value, &elements); err != nil {
			return fmt.Errorf("timeline items: %w", err)
		}
		tl.Items = make([]Item, 0, len(elements))
		for i, element := range elements {
			item, err := decodeItem(element)
			if err != nil {
				return fmt.Errorf("timeline item %d: %w", i, err)
			}
			tl.Items = append(tl.Items, item)
		}
		delete(raw, "Items")
	}
	tl.Extra = raw
	return nil
}

func (tl *Timeline) MarshalJSON() ([]byte, error) {
	merged := maps.Clone(tl.Extra)
	if merged == nil {
		merged = make(Fields, 2)
	}

	videoInfo, err := json.Marshal(tl.VideoInfo)
	if err != nil {
		return nil, err
	}
	merged["VideoInfo"] = videoInfo

	elements := make([]json.RawMessage, 0, len(tl.Items))
	for i, item := range tl.Items {
		element, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("timeline item %d: %w", i, err)
		}
		elements = append(elements, element)
	}
	items, err := json.Marshal(elements)
	if err != nil {
		return nil, err
	}
	merged["Items"] = items

	return json.Marshal(merged)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var raw Fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, ok := raw["Timeline"]
	if !ok {
		return fmt.Errorf("project document has no Timeline section")
	}
	if err := json.Unmarshal(value, &p.Timeline); err != nil {
		return err
	}
	delete(raw, "Timeline")
	p.Extra = raw
	return nil
}

func (p *Project) MarshalJSON() ([]byte, error) {
	merged := maps.Clone(p.Extra)
	if merged == nil {
		merged = make(Fields, 1)
	}
	timeline, err := json.Marshal(&p.Timeline)
	if err != nil {
		return nil, err
	}
	merged["Timeline"] = timeline
	return json.Marshal(merged)
}
