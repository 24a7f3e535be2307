// Package mnemonic provides BIP39 recovery phrase generation, validation,
// and seed derivation.
package mnemonic

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// WordCount is the number of words in a generated recovery phrase.
// Validation accepts any BIP39-valid count (12/15/18/21/24); generation
// always produces 12 words from 128 bits of entropy.
const WordCount = 12

// entropyBits is the entropy size backing a 12-word phrase.
const entropyBits = 128

// ErrInvalidMnemonic indicates the phrase failed BIP39 validation.
var ErrInvalidMnemonic = loomerr.ErrInvalidMnemonic

// whitespaceRegex matches one or more whitespace characters.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Generate creates a new 12-word BIP39 recovery phrase. Entropy comes from
// the process CSPRNG (crypto/rand via bip39.NewEntropy).
func Generate() (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", loomerr.Wrap(err, "generating entropy")
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", loomerr.Wrap(err, "encoding mnemonic")
	}

	return phrase, nil
}

// Validate checks a recovery phrase against BIP39: every word must be in
// the word list, the word count must be BIP39-valid, and the checksum
// encoded in the final word must match. Fails closed on any violation.
func Validate(phrase string) error {
	if phrase == "" {
		return ErrInvalidMnemonic
	}

	normalized := Normalize(phrase)

	// MnemonicToByteArray verifies word count, word membership, and checksum.
	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		return ErrInvalidMnemonic
	}

	return nil
}

// ToSeed converts a recovery phrase to the 64-byte master seed via
// PBKDF2-HMAC-SHA512 with the fixed "mnemonic" salt prefix, an empty
// passphrase, and 2048 rounds. Identical phrases always yield identical
// seeds. The phrase is validated first.
func ToSeed(phrase string) ([]byte, error) {
	normalized := Normalize(phrase)

	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		return nil, ErrInvalidMnemonic
	}

	return bip39.NewSeed(normalized, ""), nil
}

// Normalize lowercases a phrase, collapses whitespace runs to single
// spaces, and trims the ends.
func Normalize(phrase string) string {
	phrase = strings.ToLower(phrase)
	phrase = whitespaceRegex.ReplaceAllString(phrase, " ")
	return strings.TrimSpace(phrase)
}

// Words splits a normalized phrase into its word sequence.
func Words(phrase string) []string {
	return strings.Fields(Normalize(phrase))
}

// Join reassembles a stored word sequence into a phrase.
func Join(words []string) string {
	return strings.Join(words, " ")
}

// IsValidWord checks membership in the BIP39 English word list.
func IsValidWord(word string) bool {
	word = strings.ToLower(word)
	for _, w := range bip39.GetWordList() {
		if w == word {
			return true
		}
	}
	return false
}

// MaxTypoDistance is the largest Levenshtein distance worth suggesting.
const MaxTypoDistance = 2

// Typo describes a word that failed word-list membership, with the closest
// BIP39 word when one is near enough.
type Typo struct {
	// Index is the word position in the phrase (0-based).
	Index int
	// Word is the original (possibly misspelled) word.
	Word string
	// Suggestion is the closest BIP39 word, or empty if none found.
	Suggestion string
	// Distance is the Levenshtein distance to the suggestion.
	Distance int
}

// SuggestWord finds the closest BIP39 word to the input. Returns empty
// string if nothing is within MaxTypoDistance.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string

	for _, word := range bip39.GetWordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
		if dist == 0 {
			return word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos scans a phrase for words outside the BIP39 word list and
// suggests corrections for user-facing validation messages.
func DetectTypos(phrase string) []Typo {
	if phrase == "" {
		return nil
	}

	var typos []Typo
	for i, word := range Words(phrase) {
		if IsValidWord(word) {
			continue
		}
		suggestion := SuggestWord(word)
		distance := 0
		if suggestion != "" {
			distance = levenshtein.ComputeDistance(word, suggestion)
		}
		typos = append(typos, Typo{
			Index:      i,
			Word:       word,
			Suggestion: suggestion,
			Distance:   distance,
		})
	}

	return typos
}

// FormatTypoSuggestions renders typo information as one line per word for
// presentation alongside an invalid-mnemonic error.
func FormatTypoSuggestions(typos []Typo) string {
	if len(typos) == 0 {
		return ""
	}

	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		// Word position is 1-indexed for human readability
		b.WriteString("Word ")
		b.WriteString(strconv.Itoa(typo.Index + 1))
		b.WriteString(": '")
		b.WriteString(typo.Word)
		b.WriteByte('\'')
		if typo.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(typo.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not a valid BIP39 word")
		}
	}
	return b.String()
}
