// Package align matches script cues against the project's voice items and
// synthesizes the requested image and text timeline items.
//
// Matching is strictly first-occurrence, left to right, over two
// front-popped queues: once a voice item falls behind the cursor it can
// never anchor a later cue. Cues and their bounding lines must therefore
// appear in the same relative order in the script and the timeline. The
// queues are index cursors over fixed slices so a failed run leaves an
// inspectable trace.
package align
