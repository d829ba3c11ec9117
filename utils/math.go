package utils

import "math"

func CantorPair(a, b uint64) uint64 {
	w := a + b
	return w*(w+1)/2 + b
}

func CantorUnpair(z uint64) (a, b uint64) {
	w := uint64((math.Sqrt(float64(8*z+1)) - 1) / 2)
	t := w * (w + 1) / 2
	b = z - t
	a = w - b
	return
}

// DocumentID derives the index document ID for a message. Channel IDs and
// message IDs are both non negative, which Cantor pairing requires.
func DocumentID(chatID int64, messageID int) int64 {
	return int64(CantorPair(uint64(chatID), uint64(messageID)))
}
