package blockzip

import (
	"bytes"
	"strings"
)

// Wire codes identifying the codec in the container header
var algorithmCodes = map[Algorithm]uint8{
	AlgorithmZlib:   1,
	AlgorithmGzip:   2,
	AlgorithmZstd:   3,
	AlgorithmLZ4:    4,
	AlgorithmBrotli: 5,
	AlgorithmSnappy: 6,
}

// Reverse wire code mapping (code -> algorithm)
var algorithmNames = map[uint8]Algorithm{
	1: AlgorithmZlib,
	2: AlgorithmGzip,
	3: AlgorithmZstd,
	4: AlgorithmLZ4,
	5: AlgorithmBrotli,
	6: AlgorithmSnappy,
}

// Extension is the conventional file extension for blockzip containers.
const Extension = ".bzc"

// ParseAlgorithm parses a codec name as accepted on the command line.
// Recognizes a few common aliases.
func ParseAlgorithm(name string) (Algorithm, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zlib", "deflate":
		return AlgorithmZlib, true
	case "gzip", "gz":
		return AlgorithmGzip, true
	case "zstd", "zstandard":
		return AlgorithmZstd, true
	case "lz4":
		return AlgorithmLZ4, true
	case "brotli", "br":
		return AlgorithmBrotli, true
	case "snappy", "sz":
		return AlgorithmSnappy, true
	}
	return "", false
}

// IsContainer reports whether data begins with a blockzip container header.
func IsContainer(data []byte) bool {
	return len(data) >= len(containerMagic) && bytes.Equal(data[:len(containerMagic)], containerMagic)
}
