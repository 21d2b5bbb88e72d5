package vector

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/docdex/docdex"
)

// File format: magic, version, dimension, count as little-endian
// uint32 followed by count*dimension float32 values. Writes go to a
// temporary file renamed into place so a crashed write leaves the
// previous index authoritative.
var fileMagic = [4]byte{'D', 'X', 'I', 'X'}

const fileVersion = 1

// Save persists the index to path.
func (x *Index) Save(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	header := []any{fileMagic, uint32(fileVersion), uint32(x.dim), uint32(len(x.vectors))}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			f.Close()
			return err
		}
	}
	for _, vec := range x.vectors {
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads an index from path. Any decode failure returns an error
// the caller treats as an invalid-cache condition, not a crash.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "truncated index file")
	}
	if magic != fileMagic {
		return nil, docdex.Errorf(docdex.EINVALID, "not an index file")
	}

	var version, dim, count uint32
	for _, v := range []*uint32{&version, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, docdex.Errorf(docdex.EINVALID, "truncated index header")
		}
	}
	if version != fileVersion {
		return nil, docdex.Errorf(docdex.EINVALID, "unsupported index version %d", version)
	}
	if dim == 0 && count > 0 {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid index dimension")
	}

	// The header is the only source of the allocation sizes below, so
	// check it against the file's actual size before trusting it.
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	const headerSize = 16
	if count > 0 && (info.Size()-headerSize)/(int64(dim)*4) < int64(count) {
		return nil, docdex.Errorf(docdex.EINVALID, "truncated index data")
	}

	x := &Index{dim: int(dim), vectors: make([][]float32, 0, count)}
	for i := uint32(0); i < count; i++ {
		vec := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, docdex.Errorf(docdex.EINVALID, "truncated index data")
		}
		x.vectors = append(x.vectors, vec)
	}
	return x, nil
}
