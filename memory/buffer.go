package memory

// Buffer receives the output of a growable stream. It is the caller's
// handle on the engine-allocated memory and stays valid after the stream
// is closed.
type Buffer struct {
	data []byte
	n    int
}

// Publish implements memstream.Publisher.
func (b *Buffer) Publish(buf []byte, length int) error {
	b.data = buf
	b.n = length
	return nil
}

// Bytes returns the content, without the terminator.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// Len returns the published logical length.
func (b *Buffer) Len() int { return b.n }

// Cap returns the size of the backing allocation.
func (b *Buffer) Cap() int { return len(b.data) }

// String returns the content as a string.
func (b *Buffer) String() string { return string(b.data[:b.n]) }

// Allocation returns the whole backing allocation. It is at least Len()+1
// bytes long and Allocation()[Len()] is zero.
func (b *Buffer) Allocation() []byte { return b.data }

// Cells publishes into caller-owned out-parameters.
type Cells struct {
	Buf *[]byte
	Len *int
}

// Publish implements memstream.Publisher.
func (c Cells) Publish(buf []byte, length int) error {
	*c.Buf = buf
	*c.Len = length
	return nil
}
