package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchKey(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "han initials", in: "可口可乐", want: "kkkl"},
		{name: "ascii lowercased", in: "Coca Cola", want: "cocacola"},
		{name: "accents folded", in: "Café", want: "cafe"},
		{name: "digits and symbols skipped", in: "7-Up 330ml", want: "upml"},
		{name: "mixed", in: "乐事Lays", want: "lslays"},
		{name: "capped at ten", in: "abcdefghijklmnop", want: "abcdefghij"},
		{name: "nothing usable", in: "1234!!", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SearchKey(tc.in))
		})
	}
}
