package source

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stutterReader hands out one byte per Read and returns (0, nil) on the
// calls listed in empty.
type stutterReader struct {
	data  string
	calls int
	empty map[int]bool
}

func (r *stutterReader) Read(p []byte) (int, error) {
	r.calls++
	if r.empty[r.calls] {
		return 0, nil
	}
	if r.data == "" {
		return 0, io.EOF
	}
	n := copy(p[:1], r.data)
	r.data = r.data[n:]
	return n, nil
}

func collect(out *[]byte) ByteFunc {
	return func(b byte) error {
		*out = append(*out, b)
		return nil
	}
}

func TestLiteral(t *testing.T) {
	var got []byte
	require.NoError(t, Literal("Hi!\n\x00é", collect(&got)))
	assert.Equal(t, []byte("Hi!\n\x00é"), got)
}

func TestLiteralEmpty(t *testing.T) {
	var got []byte
	require.NoError(t, Literal("", collect(&got)))
	assert.Empty(t, got)
}

func TestLiteralStopsOnCallbackError(t *testing.T) {
	boom := errors.New("transport closed")
	var got []byte
	err := Literal("abc", func(b byte) error {
		if b == 'b' {
			return boom
		}
		got = append(got, b)
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []byte("a"), got)
}

func TestStream(t *testing.T) {
	tests := []struct {
		name   string
		reader io.Reader
		chunk  int
		want   string
	}{
		{"empty stream", strings.NewReader(""), 100, ""},
		{"single chunk", strings.NewReader("hello"), 100, "hello"},
		{"many small chunks", strings.NewReader("hello, world"), 3, "hello, world"},
		{"one byte reads", iotest.OneByteReader(strings.NewReader("abc")), 100, "abc"},
		{"default chunk size", strings.NewReader(strings.Repeat("x", 250)), 0, strings.Repeat("x", 250)},
		{"data with EOF", iotest.DataErrReader(strings.NewReader("tail")), 100, "tail"},
		{"empty read mid stream", &stutterReader{data: "abc", empty: map[int]bool{2: true}}, 100, "abc"},
		{"empty reads before data", &stutterReader{data: "xy", empty: map[int]bool{1: true, 2: true}}, 100, "xy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []byte
			require.NoError(t, Stream(tt.reader, tt.chunk, collect(&got)))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestStreamReadErrorAfterBytes(t *testing.T) {
	r := io.MultiReader(strings.NewReader("abcd"), iotest.ErrReader(errors.New("device gone")))

	var got []byte
	require.NoError(t, Stream(r, 2, collect(&got)))
	assert.Equal(t, "abcd", string(got))
}

func TestStreamCallbackErrorPropagates(t *testing.T) {
	boom := errors.New("compositor went away")
	count := 0
	err := Stream(bytes.NewBufferString("abcdef"), 4, func(b byte) error {
		count++
		if count == 5 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, count)
}

func TestDelayBetweenBytes(t *testing.T) {
	var sleeps []time.Duration
	sleep := func(d time.Duration) { sleeps = append(sleeps, d) }

	var got []byte
	require.NoError(t, Literal("abc", collect(&got), WithDelay(5*time.Millisecond), WithSleep(sleep)))
	assert.Equal(t, []time.Duration{5 * time.Millisecond, 5 * time.Millisecond}, sleeps)

	sleeps = nil
	require.NoError(t, Stream(strings.NewReader("abc"), 1, collect(&got), WithSleep(sleep)))
	assert.Empty(t, sleeps)
}
