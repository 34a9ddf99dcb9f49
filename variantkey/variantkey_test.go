package variantkey

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBothOrientationsPresent(t *testing.T) {
	lines := []string{
		"1\t1000\tA\tG",
		"2\t2000\tC\tT",
		"X\t55\tAT\tA",
	}

	set, err := Build(lines)
	require.NoError(t, err)

	for _, line := range lines {
		k, err := ParseLine(line)
		require.NoError(t, err)

		assert.True(t, set.Contains(k), "missing %v", k)
		assert.True(t, set.Contains(k.Swapped()), "missing swapped %v", k)
	}
	assert.Equal(t, 6, set.Len())
}

func TestExactMatchOnly(t *testing.T) {
	set, err := Build([]string{"1\t1000\tA\tG"})
	require.NoError(t, err)

	for _, k := range []Key{
		{"chr1", "1000", "A", "G"},
		{"1", "01000", "A", "G"},
		{"1", "1000", "a", "g"},
		{"1", "1001", "A", "G"},
		{"1", "1000", "A", "C"},
	} {
		assert.False(t, set.Contains(k), "unexpected match for %v", k)
	}
}

func TestIdempotentInsert(t *testing.T) {
	once, err := Build([]string{"1\t1000\tA\tG"})
	require.NoError(t, err)

	twice, err := Build([]string{"1\t1000\tA\tG", "1\t1000\tA\tG", "1\t1000\tG\tA"})
	require.NoError(t, err)

	assert.Equal(t, once.keys, twice.keys)
}

func TestMalformedLine(t *testing.T) {
	_, err := Build([]string{"1\t1000\tA\tG", "1\t1000\tA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
	assert.Contains(t, err.Error(), "line 2")
}

func TestWhitespaceOnlyLinesAreMalformed(t *testing.T) {
	for _, line := range []string{"\t\t", "\t", " ", "\t\t\r"} {
		_, err := Build([]string{"1\t1000\tA\tG", line})
		require.Error(t, err, "%q", line)
		assert.True(t, errors.Is(err, ErrMalformedLine), "%q", line)
		assert.Contains(t, err.Error(), "line 2")
	}

	set, err := Build([]string{"1\t1000\tA\tG", "", "\r"})
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}

func TestReadSkipsEmptyLinesAndCarriageReturns(t *testing.T) {
	in := "1\t1000\tA\tG\r\n\n2\t5\tC\tT\textra\n"

	set, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	assert.True(t, set.Contains(Key{"1", "1000", "G", "A"}))
	assert.True(t, set.Contains(Key{"2", "5", "C", "T"}))
	assert.Equal(t, 4, set.Len())
}

func TestReadReportsLineNumber(t *testing.T) {
	_, err := Read(strings.NewReader("1\t1\tA\tG\n\n3\t3\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
	assert.Contains(t, err.Error(), "line 3")
}

func TestID(t *testing.T) {
	assert.Equal(t, "1_1000_A_G", Key{"1", "1000", "A", "G"}.ID())
}
