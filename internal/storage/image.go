package storage

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeImage renders an engine image as comma-separated decimal byte values,
// the layout the slot has always held.
func EncodeImage(image []byte) string {
	var sb strings.Builder
	sb.Grow(len(image) * 4)
	for i, b := range image {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}
	return sb.String()
}

func DecodeImage(text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: decode image: empty", ErrEngine)
	}
	parts := strings.Split(text, ",")
	out := make([]byte, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: decode image: byte %d: %v", ErrEngine, i, err)
		}
		out[i] = byte(n)
	}
	return out, nil
}
