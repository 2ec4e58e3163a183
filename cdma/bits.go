package cdma

// bitWriter appends values most significant bit first.
type bitWriter struct {
	bytes []byte
	bits  int
}

func (w *bitWriter) write(bitCount int, value uint) {
	for i := bitCount - 1; i >= 0; i-- {
		if w.bits%8 == 0 {
			w.bytes = append(w.bytes, 0)
		}
		if (value>>i)&1 == 1 {
			w.bytes[len(w.bytes)-1] |= 0x80 >> (w.bits % 8)
		}
		w.bits++
	}
}

func (w *bitWriter) writeBytes(bytes []byte) {
	for _, b := range bytes {
		w.write(8, uint(b))
	}
}

// skip writes zero bits up to the next octet boundary.
func (w *bitWriter) skip() {
	if remainder := w.bits % 8; remainder != 0 {
		w.write(8-remainder, 0)
	}
}

func (w *bitWriter) Bytes() []byte {
	return w.bytes
}
