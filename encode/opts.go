package encode

type EncodeOption func(*EncState)

// Pretty writes one element per line.
func Pretty(v bool) EncodeOption {
	return func(es *EncState) { es.pretty = v }
}

// Indent sets the number of spaces per nesting level in pretty output.
func Indent(n int) EncodeOption {
	return func(es *EncState) {
		if n >= 0 {
			es.indent = n
		}
	}
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// EscapeControl writes control characters that have no short escape as
// \u00XX. Without it they are written raw, and only parse back with
// lenient control character handling.
func EscapeControl(v bool) EncodeOption {
	return func(es *EncState) { es.control = v }
}

func TrailingNewline(v bool) EncodeOption {
	return func(es *EncState) { es.trailingNL = v }
}
