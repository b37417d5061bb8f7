// Package base32 implements binary-to-text encoding and decoding for
// base32 alphabets described as data: a 32-symbol table plus decode
// alias and padding rules. Crockford and RFC 4648 grammars are provided
// as predefined alphabets and custom symbol sets can be built with
// NewAlphabet.

package base32

import "errors"

const b32Invalid = 0xFF

// ErrInvalidAlphabet is returned by NewAlphabet when the symbol set or
// padding character cannot form a usable alphabet.
var ErrInvalidAlphabet = errors.New("invalid base32 alphabet")

// Alphabet holds a base32 symbol table together with its inverse lookup
// and padding policy. Values are immutable once constructed and safe to
// share between goroutines.
type Alphabet struct {
	enc     [32]byte
	dec     [256]byte
	padChar byte
	padding bool
}

// NewAlphabet builds an alphabet from 32 pairwise-distinct ASCII symbols.
// A zero padChar produces an unpadded alphabet; otherwise encoded output
// is padded with padChar to a multiple of 8 characters. The padding
// character must not collide with a symbol.
//
// Custom alphabets decode canonical symbols only. Alias folding is a
// property of the predefined CrockfordBase32 alphabet.
func NewAlphabet(symbols string, padChar byte) (*Alphabet, error) {
	if len(symbols) != 32 || padChar >= 0x80 {
		return nil, ErrInvalidAlphabet
	}

	a := &Alphabet{
		padChar: padChar,
		padding: padChar != 0,
	}

	for i := range a.dec {
		a.dec[i] = b32Invalid
	}

	for i := range symbols {
		v := symbols[i]
		if v >= 0x80 || v == padChar || a.dec[v] != b32Invalid {
			return nil, ErrInvalidAlphabet
		}

		a.enc[i] = v
		a.dec[v] = byte(i)
	}

	return a, nil
}

func mustAlphabet(symbols string, padChar byte) *Alphabet {
	a, err := NewAlphabet(symbols, padChar)
	if err != nil {
		panic("base32: " + err.Error())
	}

	return a
}

const rfc4648Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var (
	// RFC4648Base32 is the standard IETF base32 alphabet, padded with
	// '=' to a multiple of 8 characters. Decoding is case sensitive.
	RFC4648Base32 = mustAlphabet(rfc4648Chars, '=')

	// UnpaddedRFC4648Base32 uses the RFC 4648 symbols but never emits
	// trailing padding characters.
	UnpaddedRFC4648Base32 = mustAlphabet(rfc4648Chars, 0)

	// CrockfordBase32 is Douglas Crockford's human-transcription
	// alphabet, padded with '='. Decoding is case insensitive and folds
	// the visually ambiguous aliases O into 0 and I and L into 1.
	// Encoding always emits the canonical uppercase symbols.
	CrockfordBase32 = func() *Alphabet {
		const (
			chars      = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
			b32UpToLow = ('a' - 'A')
		)

		a := mustAlphabet(chars, '=')

		upLetter := func(v, i byte) {
			a.dec[v] = i
			a.dec[v+b32UpToLow] = i
		}

		for i := range chars {
			i := byte(i)
			if v := chars[i]; v > '9' {
				upLetter(v, i)
			}
		}

		// char aliases
		upLetter('O', a.dec['0'])
		upLetter('I', a.dec['1'])
		upLetter('L', a.dec['1'])

		return a
	}()
)
