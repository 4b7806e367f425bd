package ddo

// WidthPolicy bounds the number of nodes a DD layer may keep before
// squashing is triggered. An interface rather than an enum, since width
// functions are arbitrary user code (e.g. shrinking with depth).
type WidthPolicy interface {
	// Width returns the maximum number of nodes layer depth may keep.
	// Must be >= 2 whenever squashing is expected to occur.
	Width(depth int) int
}

// FixedWidth returns the same width at every layer.
type FixedWidth int

// Width implements WidthPolicy.
func (w FixedWidth) Width(depth int) int { return int(w) }

// PerLayerWidth computes a width from the layer depth, e.g. to shrink
// the bound for deeper, more numerous layers.
type PerLayerWidth func(depth int) int

// Width implements WidthPolicy.
func (w PerLayerWidth) Width(depth int) int { return w(depth) }
