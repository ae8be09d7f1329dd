// Package project models the video-editing project document: a canvas
// description plus an ordered, polymorphic list of timeline items
// discriminated by a "$type" tag (Image, Shape, Tachie, Text, Voice).
//
// The document is read and written as UTF-8 JSON with a byte order mark,
// matching what the editor produces. Only the fields the alignment pipeline
// needs are typed; everything else (effect lists, per-character voice engine
// parameters, layer settings) is captured as opaque raw JSON and preserved
// through a read/modify/write round trip.
package project
