package keyboard

// Buffer is the in-progress text with an insertion pointer.
// The pointer always satisfies 0 <= pointer <= Len().
type Buffer struct {
	runes   []rune
	pointer int
}

// NewBuffer returns a buffer holding text with the pointer at its end.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.Set(text)
	return b
}

func (b *Buffer) String() string {
	return string(b.runes)
}

// Len returns the length in runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Pointer returns the insertion index.
func (b *Buffer) Pointer() int {
	return b.pointer
}

// Set replaces the contents and moves the pointer to the end.
func (b *Buffer) Set(text string) {
	b.runes = []rune(text)
	b.pointer = len(b.runes)
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.runes = b.runes[:0]
	b.pointer = 0
}

// Insert places r at the pointer and advances it.
func (b *Buffer) Insert(r rune) {
	b.runes = append(b.runes, 0)
	copy(b.runes[b.pointer+1:], b.runes[b.pointer:])
	b.runes[b.pointer] = r
	b.pointer++
}

// DeleteBackward removes the rune before the pointer. It reports false when
// the pointer is already at the start.
func (b *Buffer) DeleteBackward() bool {
	if b.pointer == 0 || len(b.runes) == 0 {
		return false
	}
	b.runes = append(b.runes[:b.pointer-1], b.runes[b.pointer:]...)
	b.pointer--
	return true
}

// MovePointer shifts the pointer by delta, clamped to [0, Len()].
func (b *Buffer) MovePointer(delta int) bool {
	next := b.pointer + delta
	if next < 0 {
		next = 0
	}
	if next > len(b.runes) {
		next = len(b.runes)
	}
	if next == b.pointer {
		return false
	}
	b.pointer = next
	return true
}

// SetPointer places the pointer at pos, clamped to the buffer.
func (b *Buffer) SetPointer(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.runes) {
		pos = len(b.runes)
	}
	b.pointer = pos
}
