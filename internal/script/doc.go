// Package script parses dialogue scripts authored as ordered YAML documents.
//
// A script is a top-level sequence whose entries are either plain strings
// (stage directions, ignored), single-key mappings of character name to
// spoken line, or cue markers: mappings carrying an "image" or "text" key
// plus optional zoom, y, and font_size overrides. Parsing turns the cue
// markers into Cue values, each bounded by the voice lines around it.
package script
