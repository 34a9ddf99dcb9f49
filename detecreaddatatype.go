package mroutcome

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// ErrDecompression is wrapped by every error that comes from a corrupt or
// unreadable compressed stream.
var ErrDecompression = errors.New("decompression error")

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZstd
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZstd:
		return "zstd"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

// Ordered so that detection is deterministic. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475 and RFC 8878 for zstd.
var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
}

// DetectDataType peeks at the head of r and reports which known compression
// format, if any, it starts with. Nothing is consumed from r.
func DetectDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

	for _, candidate := range byteCodeSigs {
		if bytes.HasPrefix(buff, candidate.sig) {
			return candidate.dt, nil
		}
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReader wraps r in the decompressor matching its leading bytes.
// Unrecognized streams are assumed to be uncompressed and are passed through.
// Closing the result releases the decompressor but never closes r.
func MaybeDecompressReader(r io.Reader) (io.ReadCloser, DataType, error) {
	buf := bufio.NewReaderSize(r, 1<<16)

	dt, err := DetectDataType(buf)
	if err != nil {
		return nil, dt, err
	}

	switch dt {
	case DataTypeGzip:
		zr, err := pgzip.NewReader(buf)
		if err != nil {
			return nil, dt, fmt.Errorf("%w: gzip: %v", ErrDecompression, err)
		}
		return zr, dt, nil
	case DataTypeZip:
		zr := zipstream.NewReader(buf)
		if _, err := zr.Next(); err != nil {
			return nil, dt, fmt.Errorf("%w: zip: %v", ErrDecompression, err)
		}
		return &readCloserFaker{zr}, dt, nil
	case DataTypeXZ:
		xr, err := xz.NewReader(buf, 0)
		if err != nil {
			return nil, dt, fmt.Errorf("%w: xz: %v", ErrDecompression, err)
		}
		return &readCloserFaker{xr}, dt, nil
	case DataTypeZstd:
		zr, err := zstd.NewReader(buf)
		if err != nil {
			return nil, dt, fmt.Errorf("%w: zstd: %v", ErrDecompression, err)
		}
		return zr.IOReadCloser(), dt, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(buf)}, dt, nil
	}

	return &readCloserFaker{buf}, dt, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
