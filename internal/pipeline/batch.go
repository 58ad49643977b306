package pipeline

import "fmt"

// Chunk splits items into contiguous, order-preserving chunks of size
// elements; the final chunk holds the remainder. Chunks alias the input
// slice, nothing is copied.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidChunkSize, size)
	}

	var chunks [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks, nil
}
