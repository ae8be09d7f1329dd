package logging

import (
	"log/slog"
	"time"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for conversion run identifiers.
	FieldRunID = "run_id"
	// FieldCharacter is the standardized structured logging key for speaking character names.
	FieldCharacter = "character"
	// FieldCue is the standardized structured logging key for cue labels (image path or text).
	FieldCue = "cue"
	// FieldFrame is the standardized structured logging key for timeline frame positions.
	FieldFrame = "frame"
	// FieldLength is the standardized structured logging key for timeline item lengths.
	FieldLength = "length"
	// FieldLayer is the standardized structured logging key for timeline layers.
	FieldLayer = "layer"
	// FieldPath is the standardized structured logging key for file paths.
	FieldPath = "path"
	// FieldCount is the standardized structured logging key for item counts.
	FieldCount = "count"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
