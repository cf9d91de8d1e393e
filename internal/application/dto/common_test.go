package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPage(t *testing.T) {
	cases := []struct {
		name       string
		in         PageRequest
		page, size int
	}{
		{"vacío", PageRequest{}, 1, DefaultLimit},
		{"negativos", PageRequest{Page: -3, Limit: -1}, 1, DefaultLimit},
		{"limit tope", PageRequest{Page: 2, Limit: 5000}, 2, MaxLimit},
		{"page enorme", PageRequest{Page: math.MaxInt, Limit: MaxLimit}, MaxPage, MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.DefaultPage()
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.size, p.Limit)
			assert.GreaterOrEqual(t, p.Offset(), 0)
		})
	}
}
