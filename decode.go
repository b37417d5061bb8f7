// This base32 decoding implementation rejects inputs that contain non-canonical
// tail bits that are non-zero. Other implementations may ignore them as useless
// noise but this algorithm strictly interprets them as a signal to fail decoding.
// If you are bit packing at a higher level to utilize these empty bits you are
// required to clear them before passing bytes to these functions. It is unsafe to
// assume the contents are noise as it could indicate a failure to preserve the
// encoded value full length.

package base32

import (
	"errors"
	"slices"
	"strconv"
	"unsafe"
)

const (

	// Only these remainders are possible for valid un-padded base32:
	// 0, 2, 4, 5, 7. Others imply bad input.

	validDecodeRemainder = uint8((1 << 0) | (1 << 2) | (1 << 4) | (1 << 5) | (1 << 7))

	// Padded alphabets never emit more than 6 trailing padding
	// characters per RFC 4648 block.
	maxPadChars = 6
)

var (
	ErrInvalidBase32Length = errors.New("invalid base32 length")
	ErrInvalidBase32Char   = errors.New("invalid base32 character")
	ErrNonZeroPaddingBits  = errors.New("nonzero base32 padding bits")
)

// CorruptInputError reports the first byte of a decode source that is
// neither an alphabet symbol nor one of its decode aliases.
//
// It matches ErrInvalidBase32Char under errors.Is.
type CorruptInputError struct {
	Offset int
	Char   byte
}

func (e *CorruptInputError) Error() string {
	return "invalid base32 character " + strconv.Quote(string(e.Char)) +
		" at offset " + strconv.Itoa(e.Offset)
}

func (e *CorruptInputError) Unwrap() error {
	return ErrInvalidBase32Char
}

// corruptAt locates the offending byte within src[off:off+n] once the
// block check has already established one is present.
func (a *Alphabet) corruptAt(src []byte, off, n int) error {
	for i := off; i < off+n; i++ {
		if a.dec[src[i]] == b32Invalid {
			return &CorruptInputError{Offset: i, Char: src[i]}
		}
	}

	return ErrInvalidBase32Char
}

// decodedLen returns the decoded byte length of
// base32 symbols with the provided length.
//
// If the input is zero the output will be zero. It is up
// to the calling context to choose how to handle the zero
// output case appropriately.
//
// If the input is invalid then -1 will be returned.
//
// invariants:
//
// - n must not be negative
func decodedLen(n int) int {
	rem := n % 8

	if (validDecodeRemainder & (uint8(1) << rem)) == 0 {
		return -1
	}

	return (n/8)*5 + (rem*5)/8
}

// stripPadding returns src without its trailing padding characters.
//
// Padding is optional on decode even for padded alphabets, mirroring
// common real-world producers. When padding is present the total input
// length must be a multiple of the 8 character block size.
func (a *Alphabet) stripPadding(src []byte) ([]byte, error) {
	if !a.padding {
		return src, nil
	}

	n := len(src)
	for n > 0 && len(src)-n < maxPadChars && src[n-1] == a.padChar {
		n--
	}

	if n != len(src) && len(src)%8 != 0 {
		return nil, ErrInvalidBase32Length
	}

	return src[:n], nil
}

func (a *Alphabet) decode(dst []byte, src []byte) error {
	n := len(src)
	dec := &a.dec

	srcPtr := unsafe.Pointer(&src[0])
	dstPtr := unsafe.Pointer(&dst[0])

	off := 0
	for range n / 8 {
		c0 := dec[*(*byte)(srcPtr)]
		c1 := dec[*(*byte)(unsafe.Add(srcPtr, 1))]
		c2 := dec[*(*byte)(unsafe.Add(srcPtr, 2))]
		c3 := dec[*(*byte)(unsafe.Add(srcPtr, 3))]
		c4 := dec[*(*byte)(unsafe.Add(srcPtr, 4))]
		c5 := dec[*(*byte)(unsafe.Add(srcPtr, 5))]
		c6 := dec[*(*byte)(unsafe.Add(srcPtr, 6))]
		c7 := dec[*(*byte)(unsafe.Add(srcPtr, 7))]

		if (c0 | c1 | c2 | c3 | c4 | c5 | c6 | c7) == b32Invalid {
			return a.corruptAt(src, off, 8)
		}

		*(*byte)(dstPtr) = (c0<<3 | c1>>2)
		*(*byte)(unsafe.Add(dstPtr, 1)) = ((c1&0x03)<<6 | c2<<1 | c3>>4)
		*(*byte)(unsafe.Add(dstPtr, 2)) = ((c3&0x0F)<<4 | c4>>1)
		*(*byte)(unsafe.Add(dstPtr, 3)) = ((c4&0x01)<<7 | c5<<2 | c6>>3)
		*(*byte)(unsafe.Add(dstPtr, 4)) = ((c6&0x07)<<5 | c7)

		srcPtr = unsafe.Add(srcPtr, 8)
		dstPtr = unsafe.Add(dstPtr, 5)
		off += 8
	}

	// Tail.
	switch n % 8 {
	case 2:
		c0 := dec[*(*byte)(srcPtr)]
		c1 := dec[*(*byte)(unsafe.Add(srcPtr, 1))]

		if (c0 | c1) == b32Invalid {
			return a.corruptAt(src, off, 2)
		}

		// last 2 LSBs of last decoded value must be zero for remainder=2
		if (c1 & 0x03) != 0 {
			return ErrNonZeroPaddingBits
		}

		*(*byte)(dstPtr) = (c0<<3 | c1>>2)
	case 4:
		c0 := dec[*(*byte)(srcPtr)]
		c1 := dec[*(*byte)(unsafe.Add(srcPtr, 1))]
		c2 := dec[*(*byte)(unsafe.Add(srcPtr, 2))]
		c3 := dec[*(*byte)(unsafe.Add(srcPtr, 3))]

		if (c0 | c1 | c2 | c3) == b32Invalid {
			return a.corruptAt(src, off, 4)
		}

		// last 4 LSBs of last decoded value must be zero for remainder=4
		if (c3 & 0x0F) != 0 {
			return ErrNonZeroPaddingBits
		}

		*(*byte)(dstPtr) = (c0<<3 | c1>>2)
		*(*byte)(unsafe.Add(dstPtr, 1)) = ((c1&0x03)<<6 | c2<<1 | c3>>4)
	case 5:
		c0 := dec[*(*byte)(srcPtr)]
		c1 := dec[*(*byte)(unsafe.Add(srcPtr, 1))]
		c2 := dec[*(*byte)(unsafe.Add(srcPtr, 2))]
		c3 := dec[*(*byte)(unsafe.Add(srcPtr, 3))]
		c4 := dec[*(*byte)(unsafe.Add(srcPtr, 4))]

		if (c0 | c1 | c2 | c3 | c4) == b32Invalid {
			return a.corruptAt(src, off, 5)
		}

		// last 1 LSB of last decoded value must be zero for remainder=5
		if (c4 & 0x01) != 0 {
			return ErrNonZeroPaddingBits
		}

		*(*byte)(dstPtr) = (c0<<3 | c1>>2)
		*(*byte)(unsafe.Add(dstPtr, 1)) = ((c1&0x03)<<6 | c2<<1 | c3>>4)
		*(*byte)(unsafe.Add(dstPtr, 2)) = ((c3&0x0F)<<4 | c4>>1)
	case 7:
		c0 := dec[*(*byte)(srcPtr)]
		c1 := dec[*(*byte)(unsafe.Add(srcPtr, 1))]
		c2 := dec[*(*byte)(unsafe.Add(srcPtr, 2))]
		c3 := dec[*(*byte)(unsafe.Add(srcPtr, 3))]
		c4 := dec[*(*byte)(unsafe.Add(srcPtr, 4))]
		c5 := dec[*(*byte)(unsafe.Add(srcPtr, 5))]
		c6 := dec[*(*byte)(unsafe.Add(srcPtr, 6))]

		if (c0 | c1 | c2 | c3 | c4 | c5 | c6) == b32Invalid {
			return a.corruptAt(src, off, 7)
		}

		// last 3 LSBs of last decoded value must be zero for remainder=7
		if (c6 & 0x07) != 0 {
			return ErrNonZeroPaddingBits
		}

		*(*byte)(dstPtr) = (c0<<3 | c1>>2)
		*(*byte)(unsafe.Add(dstPtr, 1)) = ((c1&0x03)<<6 | c2<<1 | c3>>4)
		*(*byte)(unsafe.Add(dstPtr, 2)) = ((c3&0x0F)<<4 | c4>>1)
		*(*byte)(unsafe.Add(dstPtr, 3)) = ((c4&0x01)<<7 | c5<<2 | c6>>3)
	}

	return nil
}

// UnsafeDecode decodes the source slice into the destination slice.
//
// It should generally only be used when working with pre-validated
// sizes of data like in the case of data types with known byte-lengths.
// src must not contain padding characters; use Decode for padded input.
//
// This function panics if the source is empty or if the destination
// does not have enough space in the slice for the decoded form of src.
//
// It is the parent context's responsibility to clear the dst slice
// should an error be returned and that be the ideal rollback state.
// There is no guarantee about the contents of dst when an error is
// returned. It could be partially decoded or contain empty bytes.
//
// invariants:
//
// - len(src) > 0
//
// - len(dst) >= decodedLen(len(src))
//
// - len(src) is a valid base32 encoded value length without padding
func (a *Alphabet) UnsafeDecode(dst []byte, src []byte) error {
	// guard statements forcing panics rather than letting next call
	// lead to undefined behaviors

	if n := decodedLen(len(src)); n <= 0 {
		panic("base32: invalid decode source length")
	} else if len(dst) < n {
		panic("base32: decode destination too short")
	}

	return a.decode(dst, src)
}

// Decode returns the decoded form of src if src is not empty. If src is
// empty nil is returned.
//
// Decoding is all-or-nothing: when an error is returned the byte slice
// is nil.
func (a *Alphabet) Decode(src []byte) ([]byte, error) {
	src, err := a.stripPadding(src)
	if err != nil {
		return nil, err
	}

	n := len(src)
	if n == 0 {
		return nil, nil
	}

	n = decodedLen(n)
	if n < 0 {
		return nil, ErrInvalidBase32Length
	}

	dst := make([]byte, n)

	if err := a.decode(dst, src); err != nil {
		return nil, err
	}

	return dst, nil
}

// DecodeString returns the decoded form of src if src is not empty. If
// src is empty nil is returned.
//
// Decoding is all-or-nothing: when an error is returned the byte slice
// is nil.
func (a *Alphabet) DecodeString(src string) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	return a.Decode(unsafe.Slice(unsafe.StringData(src), len(src)))
}

// AppendDecode returns the decoded form of src appended to dst
// if src is not empty. If src is empty dst is returned as-is.
//
// Decoding is all-or-nothing: when an error is returned the byte slice
// is nil. Spare capacity of dst may have been written to; the bytes
// within dst's original length are never modified.
func (a *Alphabet) AppendDecode(dst, src []byte) ([]byte, error) {
	src, err := a.stripPadding(src)
	if err != nil {
		return nil, err
	}

	n := len(src)
	if n == 0 {
		return dst, nil
	}

	n = decodedLen(n)
	if n < 0 {
		return nil, ErrInvalidBase32Length
	}
	orig := len(dst)

	dst = slices.Grow(dst, n)
	dst = dst[:orig+n]

	if err := a.decode(dst[orig:], src); err != nil {
		return nil, err
	}

	return dst, nil
}
