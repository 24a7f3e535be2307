package mnemonic

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Seed vectors derived with an empty passphrase.
//
//nolint:gochecknoglobals // BIP39 reference vectors
var seedVectors = []struct {
	name     string
	mnemonic string
	seed     string
}{
	{
		name:     "all abandon",
		mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		seed:     "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
	},
	{
		name:     "legal winner",
		mnemonic: "legal winner thank year wave sausage worth useful legal winner thank yellow",
		seed:     "878386efb78845b3355bd15ea4d39ef97d179cb712b77d5c12b6be415fffeffe5f377ba02bf3f8544ab800b955e51fbff09828f682052a20faa6addbbddfb096",
	},
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	phrase, err := Generate()
	require.NoError(t, err)

	words := strings.Fields(phrase)
	assert.Len(t, words, WordCount)
	assert.NoError(t, Validate(phrase))
}

func TestGenerate_Unique(t *testing.T) {
	t.Parallel()

	first, err := Generate()
	require.NoError(t, err)
	second, err := Generate()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phrase  string
		wantErr bool
	}{
		{
			name:   "valid 12 words",
			phrase: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		},
		{
			name:   "valid mixed case and whitespace",
			phrase: "  Legal  WINNER thank year wave sausage worth useful legal winner thank yellow ",
		},
		{
			name:   "valid 24 words",
			phrase: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
		},
		{
			name:    "empty",
			phrase:  "",
			wantErr: true,
		},
		{
			name:    "word not in list",
			phrase:  "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zzzzz",
			wantErr: true,
		},
		{
			name:    "bad checksum",
			phrase:  "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
			wantErr: true,
		},
		{
			name:    "wrong word count",
			phrase:  "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.phrase)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidMnemonic)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToSeed_Vectors(t *testing.T) {
	t.Parallel()

	for _, tt := range seedVectors {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			seed, err := ToSeed(tt.mnemonic)
			require.NoError(t, err)
			assert.Equal(t, tt.seed, hex.EncodeToString(seed))
		})
	}
}

func TestToSeed_Deterministic(t *testing.T) {
	t.Parallel()

	phrase := seedVectors[0].mnemonic

	first, err := ToSeed(phrase)
	require.NoError(t, err)
	second, err := ToSeed(phrase)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestToSeed_NormalizesInput(t *testing.T) {
	t.Parallel()

	canonical, err := ToSeed(seedVectors[1].mnemonic)
	require.NoError(t, err)

	messy, err := ToSeed("  LEGAL   winner thank year\twave sausage worth useful legal winner thank yellow ")
	require.NoError(t, err)

	assert.Equal(t, canonical, messy)
}

func TestToSeed_RejectsInvalid(t *testing.T) {
	t.Parallel()

	_, err := ToSeed("not a mnemonic at all")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestWordsAndJoin(t *testing.T) {
	t.Parallel()

	phrase := seedVectors[0].mnemonic
	words := Words(phrase)
	assert.Len(t, words, 12)
	assert.Equal(t, phrase, Join(words))
}

func TestIsValidWord(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidWord("abandon"))
	assert.True(t, IsValidWord("ZOO"))
	assert.False(t, IsValidWord("abandonn"))
	assert.False(t, IsValidWord(""))
}

func TestSuggestWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"abandonn", "abandon"},
		{"zo", "zoo"},
		{"qqqqqqqqqq", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SuggestWord(tt.input))
		})
	}
}

func TestDetectTypos(t *testing.T) {
	t.Parallel()

	typos := DetectTypos("abandon abandonn abandon")
	require.Len(t, typos, 1)
	assert.Equal(t, 1, typos[0].Index)
	assert.Equal(t, "abandonn", typos[0].Word)
	assert.Equal(t, "abandon", typos[0].Suggestion)

	assert.Empty(t, DetectTypos("abandon zoo legal"))

	formatted := FormatTypoSuggestions(typos)
	assert.Contains(t, formatted, "abandonn")
	assert.Contains(t, formatted, "abandon")
}
