package grapheme

import (
	"testing"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBuildASCII(t *testing.T) {
	idx := Build([]byte("let x"))
	require.Equal(t, 5, idx.Len())
	require.Equal(t, 5, idx.Count())
	for i := 0; i < 5; i++ {
		require.Equal(t, i, idx.At(i))
	}
}

func TestBuildMultiByteClusters(t *testing.T) {
	// "é" as e + combining acute (3 bytes), "ü" precomposed (2 bytes), family emoji (25 bytes)
	text := "a" + "e\u0301" + "\u00fc" + "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466" + "b"
	idx := Build([]byte(text))
	require.Equal(t, len(text), idx.Len())
	require.Equal(t, 5, idx.Count())

	require.Equal(t, 0, idx.At(0))
	require.Equal(t, 1, idx.At(1))
	require.Equal(t, 1, idx.At(3))
	require.Equal(t, 2, idx.At(4))
	require.Equal(t, 2, idx.At(5))
	require.Equal(t, 3, idx.At(6))
	require.Equal(t, 3, idx.At(len(text)-2))
	require.Equal(t, 4, idx.At(len(text)-1))
}

func TestAtClamps(t *testing.T) {
	idx := Build([]byte("abc"))
	require.Equal(t, 0, idx.At(-4))
	require.Equal(t, 2, idx.At(3))
	require.Equal(t, 2, idx.At(100))

	empty := Build(nil)
	require.Equal(t, 0, empty.Len())
	require.Equal(t, 0, empty.Count())
	require.Equal(t, 0, empty.At(0))
	require.Equal(t, 0, empty.At(7))
}

func TestRange(t *testing.T) {
	text := "x = \"h\u00e9llo\";"
	idx := Build([]byte(text))

	// the string literal spans bytes 4..12 ("héllo" has a 2-byte é)
	start, end := idx.Range(4, 12)
	require.Equal(t, 4, start)
	require.Equal(t, 11, end)

	// a node ending the document covers its last grapheme
	start, end = idx.Range(len(text)-1, len(text))
	require.Equal(t, 11, start)
	require.Equal(t, 12, end)

	start, end = idx.Range(0, 1000)
	require.Equal(t, 0, start)
	require.Equal(t, idx.Count(), end)

	start, end = Build(nil).Range(0, 0)
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)
}

func TestIndexProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom([]rune{
			'a', 'z', ' ', '\n', '\r', '\u00e9', '\u0301', '\u4e2d', '\U0001F44D', '\u200d', '\U0001F3FD',
		})).Draw(t, "text")
		idx := Build([]byte(text))

		if idx.Len() != len(text) {
			t.Fatalf("len = %d, want %d", idx.Len(), len(text))
		}
		if want := uniseg.GraphemeClusterCount(text); idx.Count() != want {
			t.Fatalf("count = %d, want %d", idx.Count(), want)
		}
		for i := 1; i < idx.Len(); i++ {
			if idx.At(i) < idx.At(i-1) {
				t.Fatalf("index decreases at byte %d: %d < %d", i, idx.At(i), idx.At(i-1))
			}
			if idx.At(i)-idx.At(i-1) > 1 {
				t.Fatalf("index skips a grapheme at byte %d", i)
			}
		}
		if idx.Len() > 0 && idx.At(idx.Len()-1) != idx.Count()-1 {
			t.Fatalf("last byte maps to %d, want %d", idx.At(idx.Len()-1), idx.Count()-1)
		}
	})
}
