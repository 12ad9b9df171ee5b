package batch

import (
	"bufio"
	"bytes"
	"io"

	"github.com/standardbeagle/rootstem/internal/semantic"
)

// maxLineSize bounds a single line; longer lines fail the scan
const maxLineSize = 1024 * 1024

// ScanWords tokenizes r line by line and calls fn for every word
func ScanWords(r io.Reader, tk *semantic.Tokenizer, fn func(word string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		for _, w := range tk.Tokenize(scanner.Text()) {
			fn(w)
		}
	}
	return scanner.Err()
}

// looksBinary applies the usual sniffing heuristic to the first 512 bytes:
// any NUL byte, or more than 30% control characters other than whitespace
func looksBinary(content []byte) bool {
	sample := content
	if len(sample) > 512 {
		sample = sample[:512]
	}
	if len(sample) == 0 {
		return false
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			nonPrintable++
		}
	}
	return nonPrintable > len(sample)*30/100
}
