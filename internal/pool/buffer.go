// Package pool provides pooled byte buffers for rendering reports and archives.
package pool

import (
	"io"
	"strconv"
	"sync"
)

const (
	ReportBufferDefaultSize   = 1024 * 4        // 4KiB
	ReportBufferMaxThreshold  = 1024 * 64       // 64KiB
	ArchiveBufferDefaultSize  = 1024 * 64       // 64KiB
	ArchiveBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
	minGrowth                 = 1024
)

// ByteBuffer is an append-only byte buffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow ensures room for n more bytes. Small buffers grow by at least
// minGrowth bytes, larger ones by a quarter of their capacity.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := max(minGrowth, cap(bb.B)/4, n)
	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteString implements io.StringWriter.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// WriteByte implements io.ByteWriter.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// AppendFloat appends v in fixed notation with prec decimals, left-padded
// with spaces to width.
func (bb *ByteBuffer) AppendFloat(v float64, prec, width int) {
	start := len(bb.B)
	bb.B = strconv.AppendFloat(bb.B, v, 'f', prec, 64)
	bb.pad(start, width)
}

// AppendInt appends v left-padded with spaces to width.
func (bb *ByteBuffer) AppendInt(v int, width int) {
	start := len(bb.B)
	bb.B = strconv.AppendInt(bb.B, int64(v), 10)
	bb.pad(start, width)
}

func (bb *ByteBuffer) pad(start, width int) {
	n := len(bb.B) - start
	if n >= width {
		return
	}
	shift := width - n
	bb.B = append(bb.B, make([]byte, shift)...)
	copy(bb.B[start+shift:], bb.B[start:start+n])
	for i := start; i < start+shift; i++ {
		bb.B[i] = ' '
	}
}

// WriteTo implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers. Buffers that grew beyond
// maxThreshold are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	reportPool  = NewByteBufferPool(ReportBufferDefaultSize, ReportBufferMaxThreshold)
	archivePool = NewByteBufferPool(ArchiveBufferDefaultSize, ArchiveBufferMaxThreshold)
)

// GetReportBuffer retrieves a buffer for rendering a text summary.
func GetReportBuffer() *ByteBuffer {
	return reportPool.Get()
}

func PutReportBuffer(bb *ByteBuffer) {
	reportPool.Put(bb)
}

// GetArchiveBuffer retrieves a buffer for encoding an archive.
func GetArchiveBuffer() *ByteBuffer {
	return archivePool.Get()
}

func PutArchiveBuffer(bb *ByteBuffer) {
	archivePool.Put(bb)
}
