package itseasy

// DefaultMaxDepth bounds nesting for textual encode/decode, export recursion
// and path query length unless an option overrides it.
const DefaultMaxDepth = 512

// NumberMode dictates how decoded numbers are represented.
type NumberMode int

const (
	NumberNative     NumberMode = iota // int64 when integral, float64 otherwise.
	NumberFloat64                      // Always float64 (with potential precision loss).
	NumberJSONNumber                   // Preserve json.Number.
)

// Severity expresses how a decode-time finding is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)
