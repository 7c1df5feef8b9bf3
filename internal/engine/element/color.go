package element

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// colorAttrs are the attributes holding color values.
var colorAttrs = []string{AttrFill, AttrStroke}

// NormalizeColor parses a hex color string (#rgb or #rrggbb, any case)
// and returns its canonical lowercase #rrggbb form.
func NormalizeColor(s string) (string, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

// NormalizeColorAttrs canonicalizes the fill and stroke attributes in
// place. Non-string and absent values are left untouched; unparseable
// strings are an error.
func NormalizeColorAttrs(attrs map[string]any) error {
	for _, key := range colorAttrs {
		v, ok := attrs[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		normalized, err := NormalizeColor(s)
		if err != nil {
			return err
		}
		attrs[key] = normalized
	}
	return nil
}
