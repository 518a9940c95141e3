package typography

import (
	"bytes"

	"github.com/kr/smartypants"

	"reprint/internal/domain/entity"
)

// New returns the styler matching the configuration: the smartypants
// transform when typography is enabled, otherwise the noop one.
func New(enabled bool) entity.Styler {
	if enabled {
		return Smart()
	}
	return Noop()
}

// Smart converts plain ASCII punctuation to typographic HTML entities
// (educated quotes, dashes, ellipses). The transform is best-effort: a
// string that cannot be processed comes back untouched.
func Smart() entity.Styler {
	return func(s string) string {
		var buf bytes.Buffer
		if _, err := smartypants.New(&buf, 0).Write([]byte(s)); err != nil {
			return s
		}
		return buf.String()
	}
}

// Noop leaves text untouched.
func Noop() entity.Styler {
	return func(s string) string { return s }
}
