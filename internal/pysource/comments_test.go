package pysource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanComments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Comment
	}{
		{
			name: "same line as def",
			src:  "def f():  # noqa_doc\n    pass\n",
			want: []Comment{{Text: "# noqa_doc", Line: 1}},
		},
		{
			name: "hash inside strings is not a comment",
			src:  "a = '# no'\nb = \"# no\"\nc = 1  # yes\n",
			want: []Comment{{Text: "# yes", Line: 3}},
		},
		{
			name: "triple quoted string spans lines",
			src:  "x = \"\"\"\n# not a comment\n\"\"\"\n# real\n",
			want: []Comment{{Text: "# real", Line: 4}},
		},
		{
			name: "escaped quote does not end string",
			src:  "s = 'it\\'s # here'  # after\n",
			want: []Comment{{Text: "# after", Line: 1}},
		},
		{
			name: "crlf line endings",
			src:  "# one\r\n# two\r\n",
			want: []Comment{{Text: "# one", Line: 1}, {Text: "# two", Line: 2}},
		},
		{
			name: "unterminated string stops at newline",
			src:  "s = 'open\n# comment\n",
			want: []Comment{{Text: "# comment", Line: 2}},
		},
		{
			name: "no comments",
			src:  "x = 1\n",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanComments([]byte(tt.src)))
		})
	}
}
