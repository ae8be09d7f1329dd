package project

// defaultCurve is the editor's "no animation" curve name.
const defaultCurve = "なし"

// Animation is a value-over-time descriptor. The editor animates between
// From and To along the named curve; a constant animation holds one flat
// value with From == To.
type Animation struct {
	From          float64 `json:"From"`
	To            float64 `json:"To"`
	AnimationType string  `json:"AnimationType"`
	Span          float64 `json:"Span"`
}

// ConstAnimation returns a flat animation holding value.
func ConstAnimation(value float64) Animation {
	return Animation{From: value, To: value, AnimationType: defaultCurve}
}

// zeroAnimation returns the editor's default animation (flat zero).
func zeroAnimation() Animation {
	return Animation{AnimationType: defaultCurve}
}
