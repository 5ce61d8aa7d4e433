package blockzip

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Container layout (all integers little-endian):
//
//	header: magic "BZC1" | version u8 | algorithm u8 | reserved u16 | blockSize u32 | blockCount u32
//	record: originalSize u32 | compressedSize u32 | payload | xxhash64(payload) u64
//
// Records appear strictly in ascending block index order; the reader relies
// on sequence position alone to reconstruct original offsets.

var containerMagic = []byte("BZC1")

const (
	containerVersion = 1
	headerSize       = 16
)

// ContainerInfo describes a parsed container header.
type ContainerInfo struct {
	Version    uint8
	Algorithm  Algorithm
	BlockSize  int
	BlockCount int
}

// Record is one framed block as stored in a container.
type Record struct {
	OriginalSize uint32
	Payload      []byte
	Checksum     uint64
}

// writeContainer serializes the fully compressed block sequence to w,
// strictly in ascending index order. Writing happens single-threaded after
// the scheduler's join barrier, so no synchronization is needed here.
func writeContainer(w io.Writer, algo Algorithm, blockSize int, blocks []Block) error {
	bw := bufio.NewWriter(w)

	var hdr [headerSize]byte
	copy(hdr[0:4], containerMagic)
	hdr[4] = containerVersion
	hdr[5] = algorithmCodes[algo]
	// hdr[6:8] reserved
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(blockSize))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(len(blocks)))
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("blockzip: write container header: %w", err)
	}

	var rec [8]byte
	var sum [8]byte
	for i := range blocks {
		b := &blocks[i]
		binary.LittleEndian.PutUint32(rec[0:4], uint32(len(b.Raw)))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(len(b.Compressed)))
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("blockzip: write block %d: %w", b.Index, err)
		}
		if _, err := bw.Write(b.Compressed); err != nil {
			return fmt.Errorf("blockzip: write block %d: %w", b.Index, err)
		}
		binary.LittleEndian.PutUint64(sum[:], xxhash.Sum64(b.Compressed))
		if _, err := bw.Write(sum[:]); err != nil {
			return fmt.Errorf("blockzip: write block %d: %w", b.Index, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("blockzip: write container: %w", err)
	}
	return nil
}

// ReadContainer parses a container, verifying the header, the declared
// record sizes and every record checksum. It does not decompress payloads.
// A truncated container, a record whose declared size exceeds the remaining
// bytes, or a checksum mismatch all yield an error wrapping ErrCorrupted.
func ReadContainer(r io.Reader) (*ContainerInfo, []Record, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: short header: %v", ErrCorrupted, err)
	}
	if string(hdr[0:4]) != string(containerMagic) {
		return nil, nil, ErrBadMagic
	}
	if hdr[4] != containerVersion {
		return nil, nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, hdr[4])
	}
	algo, ok := algorithmNames[hdr[5]]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown algorithm code %d", ErrCorrupted, hdr[5])
	}

	info := &ContainerInfo{
		Version:    hdr[4],
		Algorithm:  algo,
		BlockSize:  int(binary.LittleEndian.Uint32(hdr[8:12])),
		BlockCount: int(binary.LittleEndian.Uint32(hdr[12:16])),
	}
	if info.BlockSize < 1 && info.BlockCount > 0 {
		return nil, nil, fmt.Errorf("%w: block size %d", ErrCorrupted, info.BlockSize)
	}

	records := make([]Record, 0, info.BlockCount)
	var rec [8]byte
	for i := 0; i < info.BlockCount; i++ {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, nil, fmt.Errorf("%w: block %d: short record header: %v", ErrCorrupted, i, err)
		}
		origSize := binary.LittleEndian.Uint32(rec[0:4])
		compSize := binary.LittleEndian.Uint32(rec[4:8])

		if origSize > uint32(info.BlockSize) {
			return nil, nil, fmt.Errorf("%w: block %d: original size %d exceeds block size %d",
				ErrCorrupted, i, origSize, info.BlockSize)
		}
		if i < info.BlockCount-1 && origSize != uint32(info.BlockSize) {
			return nil, nil, fmt.Errorf("%w: block %d: non-final block holds %d of %d bytes",
				ErrCorrupted, i, origSize, info.BlockSize)
		}
		// no honest writer produces more than the codec's worst case, and
		// checking first keeps a hostile size field from forcing a huge
		// allocation
		if int64(compSize) > int64(CompressBound(info.Algorithm, int(origSize))) {
			return nil, nil, fmt.Errorf("%w: block %d: compressed size %d exceeds worst case for %d bytes",
				ErrCorrupted, i, compSize, origSize)
		}

		payload := make([]byte, compSize)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, nil, fmt.Errorf("%w: block %d: declared %d payload bytes: %v",
				ErrCorrupted, i, compSize, err)
		}
		var sum [8]byte
		if _, err := io.ReadFull(r, sum[:]); err != nil {
			return nil, nil, fmt.Errorf("%w: block %d: short checksum: %v", ErrCorrupted, i, err)
		}
		checksum := binary.LittleEndian.Uint64(sum[:])
		if xxhash.Sum64(payload) != checksum {
			return nil, nil, fmt.Errorf("%w: block %d: checksum mismatch", ErrCorrupted, i)
		}

		records = append(records, Record{
			OriginalSize: origSize,
			Payload:      payload,
			Checksum:     checksum,
		})
	}

	// anything after the last record is not ours
	var trailing [1]byte
	if n, _ := io.ReadFull(r, trailing[:]); n != 0 {
		return nil, nil, fmt.Errorf("%w: trailing data after final record", ErrCorrupted)
	}

	return info, records, nil
}

// VerifyContainer reads a container from r and checks its structural
// integrity, returning the parsed header on success.
func VerifyContainer(r io.Reader) (*ContainerInfo, error) {
	info, _, err := ReadContainer(r)
	return info, err
}

// ExtractContainer decompresses every record of a container in sequence and
// returns the reassembled payload. It exists so consumers and tests can
// check the round-trip law; there is no parallel decompression pipeline.
func ExtractContainer(r io.Reader) ([]byte, error) {
	info, records, err := ReadContainer(r)
	if err != nil {
		return nil, err
	}

	var out []byte
	for i := range records {
		raw, err := DecompressBytes(records[i].Payload, info.Algorithm)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrCorrupted, i, err)
		}
		if len(raw) != int(records[i].OriginalSize) {
			return nil, fmt.Errorf("%w: block %d: decompressed to %d bytes, header says %d",
				ErrCorrupted, i, len(raw), records[i].OriginalSize)
		}
		out = append(out, raw...)
	}
	return out, nil
}
