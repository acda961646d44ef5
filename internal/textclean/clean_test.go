
package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Hello World", "hello world"},
		{"  Tabs\tand\nnewlines\r\n here ", "tabs and newlines here"},
		{"MIXED case NBSP", "mixed case nbsp"},
		{"ÀÉÎ Ünïcode", "àéî ünïcode"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"The Cat SAT on the mat.\n\nIt was happy!",
		"\t\t  leading and trailing  \n",
		"İstanbul ǅ ΣΑΣ",
		"already clean text",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}
