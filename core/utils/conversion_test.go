package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int
	}{
		{"Int", 7, 7},
		{"Int64", int64(8), 8},
		{"Float", 9.9, 9},
		{"String", " 12 ", 12},
		{"Bytes", []byte("13"), 13},
		{"Empty string", "", -1},
		{"Garbage", "abc", -1},
		{"Unsupported", struct{}{}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.val, -1))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		val  any
		max  int
		want string
	}{
		{"Nil", nil, 0, "null"},
		{"String", "stone", 0, `"stone"`},
		{"Number", 1.5, 0, "1.5"},
		{"Bool", true, 0, "true"},
		{"Bytes", []byte{0xca, 0xfe}, 0, "0xcafe"},
		{"Stringer", 90 * time.Second, 0, "1m30s"},
		{"Truncated", "abcdefgh", 4, `"abc…`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.val, tt.max))
		})
	}
}
