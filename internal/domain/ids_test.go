package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalID(t *testing.T) {
	const canon = "4864ca87-d201-43d5-835c-23946182f8cf"
	cases := map[string]string{
		canon:                                           canon,
		"4864CA87-D201-43D5-835C-23946182F8CF":          canon,
		"  4864ca87-d201-43d5-835c-23946182f8cf ":       canon,
		"{4864ca87-d201-43d5-835c-23946182f8cf}":        canon,
		"urn:uuid:4864CA87-D201-43D5-835C-23946182F8CF": canon,
		"4864ca87d20143d5835c23946182f8cf":              canon,
		" no-es-uuid ":                                  "no-es-uuid",
		"":                                              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalID(in), "entrada %q", in)
	}
}
