// Package debugdump implements the diagnostic snapshot dump (C12): a
// zstd-compressed, versioned summary of a voxel.World's region/chunk/section
// layout and block counts, written when config.Config.Debug is set. It
// intentionally carries no full block or NBT data — only the coordinates and
// counts needed to sanity-check a save without re-reading the region files.
package debugdump

import (
	"bytes"
	"encoding/binary"
	"io"
)

// buffer is a helper for writing binary data with convenient typed methods.
type buffer struct {
	bytes.Buffer
}

func newBuffer() *buffer {
	return &buffer{}
}

func (b *buffer) WriteInt32(v int32) {
	_ = binary.Write(b, binary.BigEndian, v)
}

func (b *buffer) WriteVarInt(v int64) {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutVarint(buf, v)
	_, _ = b.Write(buf[:n])
}

func (b *buffer) WriteBytes(data []byte) {
	b.WriteVarInt(int64(len(data)))
	_, _ = b.Write(data)
}

// reader is a helper for reading binary data with convenient typed methods.
type reader struct {
	r io.Reader
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

func (r *reader) ReadInt32() (int32, error) {
	var v int32
	err := binary.Read(r.r, binary.BigEndian, &v)
	return v, err
}

func (r *reader) ReadVarInt() (int64, error) {
	br, ok := r.r.(io.ByteReader)
	if !ok {
		br = &byteReader{r: r.r}
	}
	return binary.ReadVarint(br)
}

func (r *reader) ReadBytes() ([]byte, error) {
	length, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// byteReader adapts an io.Reader to io.ByteReader for binary.ReadVarint.
type byteReader struct {
	r io.Reader
}

func (br *byteReader) ReadByte() (byte, error) {
	b := make([]byte, 1)
	n, err := br.r.Read(b)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return b[0], nil
}
