package project

import (
	"encoding/json"
	"fmt"
)

// Timeline item discriminators as stored in the document's "$type" field.
const (
	TypeImage  = "YukkuriMovieMaker.Project.Items.ImageItem, YukkuriMovieMaker"
	TypeShape  = "YukkuriMovieMaker.Project.Items.ShapeItem, YukkuriMovieMaker"
	TypeTachie = "YukkuriMovieMaker.Project.Items.TachieItem, YukkuriMovieMaker"
	TypeText   = "YukkuriMovieMaker.Project.Items.TextItem, YukkuriMovieMaker"
	TypeVoice  = "YukkuriMovieMaker.Project.Items.VoiceItem, YukkuriMovieMaker"
)

// Item is the closed union of timeline item variants. Concrete types share
// ItemBase; variant-specific fields live on the concrete structs.
type Item interface {
	// Base exposes the placement fields common to every variant.
	Base() *ItemBase

	sealedItem()
}

// ItemBase carries the placement and transform fields shared by every
// timeline item variant.
type ItemBase struct {
	Type                      string    `json:"$type"`
	Layer                     int       `json:"Layer"`
	Frame                     int       `json:"Frame"`
	Length                    int       `json:"Length"`
	X                         Animation `json:"X"`
	Y                         Animation `json:"Y"`
	Opacity                   Animation `json:"Opacity"`
	Zoom                      Animation `json:"Zoom"`
	Rotation                  Animation `json:"Rotation"`
	Blend                     string    `json:"Blend"`
	IsInverted                bool      `json:"IsInverted"`
	IsAlwaysOnTop             bool      `json:"IsAlwaysOnTop"`
	IsClippingWithObjectAbove bool      `json:"IsClippingWithObjectAbove"`
	FadeIn                    float64   `json:"FadeIn"`
	FadeOut                   float64   `json:"FadeOut"`
	VideoEffects              []any     `json:"VideoEffects"`
	Group                     int       `json:"Group"`
	PlaybackRate              float64   `json:"PlaybackRate"`
	ContentOffset             string    `json:"ContentOffset"`
	IsLocked                  bool      `json:"IsLocked"`
	IsHidden                  bool      `json:"IsHidden"`
}

func (b *ItemBase) Base() *ItemBase { return b }
func (b *ItemBase) sealedItem()     {}

func newItemBase(itemType string, layer, frame, length int) ItemBase {
	return ItemBase{
		Type:          itemType,
		Layer:         layer,
		Frame:         frame,
		Length:        length,
		X:             zeroAnimation(),
		Y:             zeroAnimation(),
		Opacity:       ConstAnimation(100),
		Zoom:          ConstAnimation(100),
		Rotation:      zeroAnimation(),
		Blend:         "Normal",
		VideoEffects:  []any{},
		PlaybackRate:  100,
		ContentOffset: "00:00:00",
	}
}

// ImageItem is a still image on the timeline.
type ImageItem struct {
	ItemBase
	FilePath string `json:"FilePath"`
	Extra    Fields `json:"-"`
}

// NewImageItem builds an image item at the given placement. Zoom and Y are
// required by the time an item is synthesized; nil leaves the editor default.
func NewImageItem(layer, frame, length int, filePath string, zoom, y *float64) *ImageItem {
	item := &ImageItem{
		ItemBase: newItemBase(TypeImage, layer, frame, length),
		FilePath: filePath,
	}
	if zoom != nil {
		item.ItemBase.Zoom = ConstAnimation(*zoom)
	}
	if y != nil {
		item.ItemBase.Y = ConstAnimation(*y)
	}
	return item
}

// ShapeItem is a vector shape. The pipeline never creates one; it only
// carries existing shapes through unchanged (plus the layer shift).
type ShapeItem struct {
	ItemBase
	Extra Fields `json:"-"`
}

// TachieItem is a character sprite. Carried through like ShapeItem.
type TachieItem struct {
	ItemBase
	Extra Fields `json:"-"`
}

// TextItem is a text overlay on the timeline.
type TextItem struct {
	ItemBase
	Text                  string    `json:"Text"`
	Font                  string    `json:"Font"`
	FontSize              Animation `json:"FontSize"`
	LineHeight2           Animation `json:"LineHeight2"`
	LetterSpacing2        Animation `json:"LetterSpacing2"`
	DisplayInterval       float64   `json:"DisplayInterval"`
	BasePoint             string    `json:"BasePoint"`
	FontColor             string    `json:"FontColor"`
	Style                 string    `json:"Style"`
	StyleColor            string    `json:"StyleColor"`
	Bold                  bool      `json:"Bold"`
	Italic                bool      `json:"Italic"`
	IsDevidedPerCharacter bool      `json:"IsDevidedPerCharacter"`
	Decorations           []any     `json:"Decorations"`
	Extra                 Fields    `json:"-"`
}

// NewTextItem builds a text overlay with the editor's defaults. FontSize,
// zoom, and y are optional overrides.
func NewTextItem(layer, frame, length int, text string, fontSize, zoom, y *float64) *TextItem {
	item := &TextItem{
		ItemBase:       newItemBase(TypeText, layer, frame, length),
		Text:           text,
		Font:           "メイリオ",
		FontSize:       ConstAnimation(48),
		LineHeight2:    ConstAnimation(100),
		LetterSpacing2: zeroAnimation(),
		BasePoint:      "CenterCenter",
		FontColor:      "#FF000000",
		Style:          "Normal",
		StyleColor:     "#FF000000",
		Decorations:    []any{},
	}
	if fontSize != nil {
		item.FontSize = ConstAnimation(*fontSize)
	}
	if zoom != nil {
		item.ItemBase.Zoom = ConstAnimation(*zoom)
	}
	if y != nil {
		item.ItemBase.Y = ConstAnimation(*y)
	}
	return item
}

// VoiceItem is a pre-existing spoken line. The alignment engine reads its
// character, text, and placement; everything else passes through.
type VoiceItem struct {
	ItemBase
	CharacterName string `json:"CharacterName"`
	Serif         string `json:"Serif"`
	Extra         Fields `json:"-"`
}

func (it *ImageItem) UnmarshalJSON(data []byte) error {
	type alias ImageItem
	return unmarshalWithExtra(data, (*alias)(it), &it.Extra)
}

func (it *ImageItem) MarshalJSON() ([]byte, error) {
	type alias ImageItem
	return marshalWithExtra((*alias)(it), it.Extra)
}

func (it *ShapeItem) UnmarshalJSON(data []byte) error {
	type alias ShapeItem
	return unmarshalWithExtra(data, (*alias)(it), &it.Extra)
}

func (it *ShapeItem) MarshalJSON() ([]byte, error) {
	type alias ShapeItem
	return marshalWithExtra((*alias)(it), it.Extra)
}

func (it *TachieItem) UnmarshalJSON(data []byte) error {
	type alias TachieItem
	return unmarshalWithExtra(data, (*alias)(it), &it.Extra)
}

func (it *TachieItem) MarshalJSON() ([]byte, error) {
	type alias TachieItem
	return marshalWithExtra((*alias)(it), it.Extra)
}

func (it *TextItem) UnmarshalJSON(data []byte) error {
	type alias TextItem
	return unmarshalWithExtra(data, (*alias)(it), &it.Extra)
}

func (it *TextItem) MarshalJSON() ([]byte, error) {
	type alias TextItem
	return marshalWithExtra((*alias)(it), it.Extra)
}

func (it *VoiceItem) UnmarshalJSON(data []byte) error {
	type alias VoiceItem
	return unmarshalWithExtra(data, (*alias)(it), &it.Extra)
}

func (it *VoiceItem) MarshalJSON() ([]byte, error) {
	type alias VoiceItem
	return marshalWithExtra((*alias)(it), it.Extra)
}

func decodeItem(data []byte) (Item, error) {
	var envelope struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("read item type: %w", err)
	}

	var item Item
	switch envelope.Type {
	case TypeImage:
		item = &ImageItem{}
	case TypeShape:
		item = &ShapeItem{}
	case TypeTachie:
		item = &TachieItem{}
	case TypeText:
		item = &TextItem{}
	case TypeVoice:
		item = &VoiceItem{}
	default:
		return nil, fmt.Errorf("unsupported timeline item type %q", envelope.Type)
	}
	if err := json.Unmarshal(data, item); err != nil {
		return nil, err
	}
	return item, nil
}
