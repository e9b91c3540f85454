package base62

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тест обратимости кодека на характерных значениях
func TestEncodeDecode_RoundTrip(t *testing.T) {
	values := []int64{0, 1, 61, 62, 3843, 1<<31 - 1, math.MaxInt64}

	for _, n := range values {
		s, err := Encode(n)
		require.NoError(t, err)
		require.NotEmpty(t, s)

		got, err := Decode(s)
		require.NoError(t, err)
		assert.Equal(t, n, got, "round-trip failed for %d (encoded as %q)", n, s)
	}
}

func TestEncode_Zero(t *testing.T) {
	s, err := Encode(0)
	require.NoError(t, err)
	assert.Equal(t, "0", s)
}

func TestEncode_Known(t *testing.T) {
	cases := map[int64]string{
		1:    "1",
		61:   "z",
		62:   "10",
		3843: "zz",
	}
	for n, want := range cases {
		got, err := Encode(n)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEncode_Negative(t *testing.T) {
	_, err := Encode(-1)
	assert.ErrorIs(t, err, ErrNegative)
}

// Encode не даёт незначащих ведущих нулей, поэтому Encode(Decode(s)) == s
func TestDecodeEncode_NoLeadingZeroRedundancy(t *testing.T) {
	for _, s := range []string{"0", "1", "z", "10", "zz", "aB9x2Q7"} {
		n, err := Decode(s)
		require.NoError(t, err)
		back, err := Encode(n)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestDecode_InvalidInput(t *testing.T) {
	for _, s := range []string{"", "abc!", "абв", "with space", "under_score"} {
		_, err := Decode(s)
		assert.Error(t, err, "expected error for %q", s)
	}
}

// Тест принадлежности всех символов кода алфавиту
func TestRandomCode_AlphabetClosure(t *testing.T) {
	for _, length := range []int{1, 8, 32} {
		code, err := RandomCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length)

		for i := 0; i < len(code); i++ {
			assert.True(t, strings.IndexByte(Alphabet, code[i]) >= 0,
				"character %q outside alphabet in %q", code[i], code)
		}
	}
}

func TestRandomCode_InvalidLength(t *testing.T) {
	_, err := RandomCode(0)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = RandomCode(-5)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

// Одинаково посеянные источники должны давать одинаковый результат
func TestRandomCodeWith_Deterministic(t *testing.T) {
	a, err := RandomCodeWith(rand.New(rand.NewSource(123456789)), 12)
	require.NoError(t, err)

	b, err := RandomCodeWith(rand.New(rand.NewSource(123456789)), 12)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// Вероятностный smoke-тест: на 10000 кодов длины 8 коллизия
// астрономически маловероятна
func TestRandomCode_NoDuplicatesInSample(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n*2)
	for i := 0; i < n; i++ {
		code, err := RandomCode(8)
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "duplicate detected: %s", code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, n)
}
