package formdata_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/cardmia/ecgportal/pkg/formdata"
)

func collect(body, marker string) []string {
	var parts []string
	for span := range formdata.Scan([]byte(body), []byte(marker)) {
		parts = append(parts, body[span.Start:span.End])
	}
	return parts
}

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		marker string
		want   []string
	}{
		{
			name:   "two parts and close delimiter",
			body:   "--b\r\none\r\n--b\r\ntwo\r\n--b--\r\n",
			marker: "--b",
			want:   []string{"\r\none\r\n", "\r\ntwo\r\n"},
		},
		{
			name:   "preamble is ignored",
			body:   "preamble--b\r\none\r\n--b--",
			marker: "--b",
			want:   []string{"\r\none\r\n"},
		},
		{
			name:   "epilogue after close delimiter is ignored",
			body:   "--b\r\none\r\n--b--\r\n--b\r\nlate\r\n--b",
			marker: "--b",
			want:   []string{"\r\none\r\n"},
		},
		{
			name:   "missing close delimiter keeps complete parts",
			body:   "--b\r\none\r\n--b\r\ntrailing",
			marker: "--b",
			want:   []string{"\r\none\r\n"},
		},
		{
			name:   "single marker yields nothing",
			body:   "--b\r\nonly",
			marker: "--b",
			want:   nil,
		},
		{
			name:   "no marker",
			body:   "plain text",
			marker: "--b",
			want:   nil,
		},
		{
			name:   "empty marker",
			body:   "--b\r\none\r\n--b--",
			marker: "",
			want:   nil,
		},
		{
			name:   "part holding only a line break",
			body:   "--b\r\n--b\r\nx\r\n--b--",
			marker: "--b",
			want:   []string{"\r\n", "\r\nx\r\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, collect(tt.body, tt.marker))
		})
	}
}

func TestScan_StopsEarly(t *testing.T) {
	t.Parallel()

	body := []byte("--b\r\n1\r\n--b\r\n2\r\n--b\r\n3\r\n--b--")
	var spans []formdata.Span
	for span := range formdata.Scan(body, []byte("--b")) {
		spans = append(spans, span)
		if len(spans) == 2 {
			break
		}
	}
	assert.Len(t, spans, 2)
	assert.True(t, slices.IsSortedFunc(spans, func(a, b formdata.Span) int { return a.Start - b.Start }))
	assert.Equal(t, 5, spans[0].Len())
}

func TestScan_BinaryContent(t *testing.T) {
	t.Parallel()

	payload := allBytes()
	body := append([]byte("--b"), payload...)
	body = append(body, []byte("--b--")...)

	spans := slices.Collect(formdata.Scan(body, []byte("--b")))
	if assert.Len(t, spans, 1) {
		assert.Equal(t, payload, body[spans[0].Start:spans[0].End])
	}
}

func TestScan_Offsets(t *testing.T) {
	t.Parallel()

	body := []byte("--b\r\none\r\n--b\r\ntwo\r\n--b--\r\n")
	want := []formdata.Span{{Start: 3, End: 10}, {Start: 13, End: 20}}

	got := slices.Collect(formdata.Scan(body, []byte("--b")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan() spans mismatch (-want +got):\n%s", diff)
	}
}
