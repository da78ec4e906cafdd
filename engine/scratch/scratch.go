// Package scratch builds short per-frame strings in a reusable byte buffer.
package scratch

import (
	"strconv"
	"unicode/utf8"
)

// Buffer is a reusable append buffer. Reset it once per frame; the strings
// it returns are copies and stay valid after a Reset. Not safe for
// concurrent use.
type Buffer struct {
	buf []byte
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

func (b *Buffer) Reset()   { b.buf = b.buf[:0] }
func (b *Buffer) Len() int { return len(b.buf) }
func (b *Buffer) Cap() int { return cap(b.buf) }

// Mark returns a bookmark for StringFrom.
func (b *Buffer) Mark() int { return len(b.buf) }

// StringFrom returns what was appended since mark.
func (b *Buffer) StringFrom(mark int) string { return string(b.buf[mark:]) }

func (b *Buffer) String() string { return string(b.buf) }

func (b *Buffer) S(s string) *Buffer {
	b.buf = append(b.buf, s...)
	return b
}

func (b *Buffer) C(c byte) *Buffer {
	b.buf = append(b.buf, c)
	return b
}

func (b *Buffer) R(r rune) *Buffer {
	b.buf = utf8.AppendRune(b.buf, r)
	return b
}

// I appends a base-10 integer.
func (b *Buffer) I(v int) *Buffer {
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
	return b
}

func (b *Buffer) U(v uint64) *Buffer {
	b.buf = strconv.AppendUint(b.buf, v, 10)
	return b
}

// F64 appends v with prec digits after the decimal point.
func (b *Buffer) F64(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

// Size appends a byte count scaled to KB, MB or GB.
func (b *Buffer) Size(n uint64) *Buffer {
	const unit = 1024
	switch {
	case n < unit:
		return b.U(n).S(" B")
	case n < unit*unit:
		return b.F64(float64(n)/unit, 1).S(" KB")
	case n < unit*unit*unit:
		return b.F64(float64(n)/(unit*unit), 1).S(" MB")
	}
	return b.F64(float64(n)/(unit*unit*unit), 2).S(" GB")
}

// Pad appends n copies of c.
func (b *Buffer) Pad(n int, c byte) *Buffer {
	for range n {
		b.buf = append(b.buf, c)
	}
	return b
}
