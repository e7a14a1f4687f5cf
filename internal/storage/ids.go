package storage

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns "<prefix>_<unix millis>_<9 base36 chars>".
func NewID(prefix string) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return prefix + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + string(suffix)
}
