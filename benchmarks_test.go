package blockzip

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"testing"
)

// benchPayload mixes compressible text with random bytes so ratios are
// neither trivial nor hopeless.
func benchPayload(n int) []byte {
	r := rand.New(rand.NewSource(7))
	data := make([]byte, 0, n)
	text := []byte("The quick brown fox jumps over the lazy dog. ")
	for len(data) < n {
		if r.Intn(4) == 0 {
			chunk := make([]byte, 512)
			r.Read(chunk)
			data = append(data, chunk...)
		} else {
			data = append(data, text...)
		}
	}
	return data[:n]
}

func BenchmarkCompressAlgorithms(b *testing.B) {
	data := benchPayload(4 << 20)

	for _, algo := range []Algorithm{
		AlgorithmZlib, AlgorithmGzip, AlgorithmZstd,
		AlgorithmLZ4, AlgorithmBrotli, AlgorithmSnappy,
	} {
		b.Run(string(algo), func(b *testing.B) {
			c, err := New(&Config{Algorithm: algo, Workers: 4})
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := c.Compress(io.Discard, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompressWorkers(b *testing.B) {
	data := benchPayload(8 << 20)

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers-%d", workers), func(b *testing.B) {
			c, err := New(&Config{Algorithm: AlgorithmZstd, Workers: workers})
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := c.Compress(io.Discard, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPartition(b *testing.B) {
	data := make([]byte, 16<<20)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Partition(data, DefaultBlockSize)
	}
}

func BenchmarkReadContainer(b *testing.B) {
	c, err := New(&Config{Algorithm: AlgorithmSnappy, Workers: 4})
	if err != nil {
		b.Fatal(err)
	}
	var out bytes.Buffer
	if err := c.Compress(&out, benchPayload(4<<20)); err != nil {
		b.Fatal(err)
	}
	raw := out.Bytes()

	b.SetBytes(int64(len(raw)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ReadContainer(bytes.NewReader(raw)); err != nil {
			b.Fatal(err)
		}
	}
}
