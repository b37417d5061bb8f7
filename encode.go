package base32

import (
	"slices"
	"unsafe"
)

// EncodedLength returns the number of bytes required to encode n bytes
// in this alphabet, including any trailing padding characters. It
// returns -1 if the input byte length cannot be encoded properly.
//
// If the input is zero, zero will be returned. Remember
// that UnsafeEncode requires the src argument
// to have a length greater than zero.
func (a *Alphabet) EncodedLength(n int) int {
	if n < 0 {
		return -1
	}

	result := a.encodedLenExpression(n)
	if result <= n && n != 0 {
		return -1
	}

	return result
}

func (a *Alphabet) encodedLenExpression(n int) int {
	if a.padding {
		return ((n + 4) / 5) * 8
	}

	return symbolLenExpression(n)
}

// symbolLenExpression returns the symbol count before any padding,
// ceil(8n/5).
func symbolLenExpression(n int) int {
	return (n/5)*8 + ((n%5)*8+4)/5
}

func (a *Alphabet) encodedLen(n int) int {
	result := a.encodedLenExpression(n)
	if result <= n {
		panic("base32: invalid encode source length")
	}

	return result
}

func (a *Alphabet) encode(dstPtr, srcPtr unsafe.Pointer, n int) {
	enc := &a.enc

	for range n / 5 {
		b0 := *(*byte)(srcPtr)
		b1 := *(*byte)(unsafe.Add(srcPtr, 1))
		b2 := *(*byte)(unsafe.Add(srcPtr, 2))
		b3 := *(*byte)(unsafe.Add(srcPtr, 3))
		b4 := *(*byte)(unsafe.Add(srcPtr, 4))

		*(*byte)(dstPtr) = enc[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = enc[((b0<<2)|(b1>>6))&31]
		*(*byte)(unsafe.Add(dstPtr, 2)) = enc[(b1>>1)&31]
		*(*byte)(unsafe.Add(dstPtr, 3)) = enc[((b1<<4)|(b2>>4))&31]
		*(*byte)(unsafe.Add(dstPtr, 4)) = enc[((b2<<1)|(b3>>7))&31]
		*(*byte)(unsafe.Add(dstPtr, 5)) = enc[(b3>>2)&31]
		*(*byte)(unsafe.Add(dstPtr, 6)) = enc[((b3<<3)|(b4>>5))&31]
		*(*byte)(unsafe.Add(dstPtr, 7)) = enc[b4&31]

		srcPtr = unsafe.Add(srcPtr, 5)
		dstPtr = unsafe.Add(dstPtr, 8)
	}

	// Tail symbols. The final partial group is zero filled on its
	// low-order bits.
	switch n % 5 {
	case 1:
		b0 := *(*byte)(srcPtr)

		*(*byte)(dstPtr) = enc[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = enc[(b0<<2)&31]
	case 2:
		b0 := *(*byte)(srcPtr)
		b1 := *(*byte)(unsafe.Add(srcPtr, 1))

		*(*byte)(dstPtr) = enc[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = enc[((b0<<2)|(b1>>6))&31]
		*(*byte)(unsafe.Add(dstPtr, 2)) = enc[(b1>>1)&31]
		*(*byte)(unsafe.Add(dstPtr, 3)) = enc[(b1<<4)&31]
	case 3:
		b0 := *(*byte)(srcPtr)
		b1 := *(*byte)(unsafe.Add(srcPtr, 1))
		b2 := *(*byte)(unsafe.Add(srcPtr, 2))

		*(*byte)(dstPtr) = enc[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = enc[((b0<<2)|(b1>>6))&31]
		*(*byte)(unsafe.Add(dstPtr, 2)) = enc[(b1>>1)&31]
		*(*byte)(unsafe.Add(dstPtr, 3)) = enc[((b1<<4)|(b2>>4))&31]
		*(*byte)(unsafe.Add(dstPtr, 4)) = enc[(b2<<1)&31]
	case 4:
		b0 := *(*byte)(srcPtr)
		b1 := *(*byte)(unsafe.Add(srcPtr, 1))
		b2 := *(*byte)(unsafe.Add(srcPtr, 2))
		b3 := *(*byte)(unsafe.Add(srcPtr, 3))

		*(*byte)(dstPtr) = enc[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = enc[((b0<<2)|(b1>>6))&31]
		*(*byte)(unsafe.Add(dstPtr, 2)) = enc[(b1>>1)&31]
		*(*byte)(unsafe.Add(dstPtr, 3)) = enc[((b1<<4)|(b2>>4))&31]
		*(*byte)(unsafe.Add(dstPtr, 4)) = enc[((b2<<1)|(b3>>7))&31]
		*(*byte)(unsafe.Add(dstPtr, 5)) = enc[(b3>>2)&31]
		*(*byte)(unsafe.Add(dstPtr, 6)) = enc[(b3<<3)&31]
	}
}

// pad fills dst beyond the symbols for n source bytes with the padding
// character. dst must be sliced to exactly encodedLen(n) bytes.
//
// No fill ever happens when n is a multiple of 5 since the symbol count
// already lands on a multiple of 8.
func (a *Alphabet) pad(dst []byte, n int) {
	if !a.padding {
		return
	}

	for i := symbolLenExpression(n); i < len(dst); i++ {
		dst[i] = a.padChar
	}
}

// UnsafeEncode fills dst with the encoded form of src.
//
// It should generally only be used when working with pre-validated
// sizes of data like in the case of data types with known byte-lengths.
//
// This function panics if the source is empty or if the destination
// does not have enough space in the slice for the encoded form of src.
//
// Knowing the length of the slice now occupied by the encoded form of src
// is the responsibility of the caller. It can easily be computed with
// EncodedLength.
//
// invariants:
//
// - len(src) > 0
//
// - len(dst) >= a.EncodedLength(len(src))
func (a *Alphabet) UnsafeEncode(dst []byte, src []byte) {
	// guard statements forcing panics rather than letting next call
	// lead to undefined behaviors

	n := a.encodedLen(len(src))
	if len(dst) < n {
		panic("base32: encode destination too short")
	}

	a.encode(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]), len(src))
	a.pad(dst[:n], len(src))
}

// Encode returns nil if src is empty, otherwise it returns the
// encoded form of src.
func (a *Alphabet) Encode(src []byte) []byte {
	n := len(src)
	if n == 0 {
		return nil
	}

	n = a.encodedLen(n)
	dst := make([]byte, n)

	a.encode(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]), len(src))
	a.pad(dst, len(src))

	return dst
}

// EncodeString returns "" if src is empty, otherwise it returns the
// encoded form of src.
func (a *Alphabet) EncodeString(src string) string {
	n := len(src)
	if n == 0 {
		return ""
	}

	n = a.encodedLen(n)
	dst := make([]byte, n)

	a.encode(unsafe.Pointer(&dst[0]), unsafe.Pointer(unsafe.StringData(src)), len(src))
	a.pad(dst, len(src))

	return string(dst)
}

// AppendEncode returns the encoded form of src appended to dst
// if src is not empty. If src is empty dst is returned as-is.
func (a *Alphabet) AppendEncode(dst, src []byte) []byte {
	n := len(src)
	if n == 0 {
		return dst
	}

	n = a.encodedLen(n)
	orig := len(dst)

	dst = slices.Grow(dst, n)
	dst = dst[:orig+n]

	a.encode(unsafe.Pointer(&dst[orig]), unsafe.Pointer(&src[0]), len(src))
	a.pad(dst[orig:], len(src))

	return dst
}

// AppendEncodeString returns the encoded form of src appended to dst
// if src is not empty. If src is empty dst is returned as-is.
func (a *Alphabet) AppendEncodeString(dst []byte, src string) []byte {
	n := len(src)
	if n == 0 {
		return dst
	}

	n = a.encodedLen(n)
	orig := len(dst)

	dst = slices.Grow(dst, n)
	dst = dst[:orig+n]

	a.encode(unsafe.Pointer(&dst[orig]), unsafe.Pointer(unsafe.StringData(src)), len(src))
	a.pad(dst[orig:], len(src))

	return dst
}
