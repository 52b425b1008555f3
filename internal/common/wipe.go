package common

// WipeByteArray zeroes the slice in place so secrets do not linger in
// memory longer than needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
