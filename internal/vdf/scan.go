package vdf

import "errors"

// SeekTo advances the cursor past the next occurrence of sig, searching
// from the current position only, and returns the offset where the match
// starts. It returns false with a nil error when the stream ends without
// a match; the cursor is then at the end of the stream.
//
// Matching runs byte by byte through the buffered reader with a KMP
// failure table, so a signature split across buffer refills, or one that
// starts inside a failed partial match, is still found. A match never
// rewinds the stream, so a full scan reads each byte once.
func (c *Cursor) SeekTo(sig []byte) (int64, bool, error) {
	if len(sig) == 0 {
		return 0, false, errors.New("vdf: empty signature")
	}
	fail := failureTable(sig)
	matched := 0
	for c.pos < c.size {
		b, err := c.br.ReadByte()
		if err != nil {
			return 0, false, c.ioError("scan", err)
		}
		c.pos++
		for matched > 0 && b != sig[matched] {
			matched = fail[matched-1]
		}
		if b == sig[matched] {
			matched++
		}
		if matched == len(sig) {
			return c.pos - int64(len(sig)), true, nil
		}
	}
	return 0, false, nil
}

// failureTable returns, for each prefix length i+1 of sig, the length of
// the longest proper prefix that is also a suffix.
func failureTable(sig []byte) []int {
	fail := make([]int, len(sig))
	k := 0
	for i := 1; i < len(sig); i++ {
		for k > 0 && sig[i] != sig[k] {
			k = fail[k-1]
		}
		if sig[i] == sig[k] {
			k++
		}
		fail[i] = k
	}
	return fail
}
