package ingest

import "strings"

// SplitText cuts a document into overlapping chunks of at most size characters.
// Cuts prefer the last whitespace inside the window so words stay intact; a
// window with no usable break is cut hard. Consecutive chunks share overlap
// characters of context.
func SplitText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = 200
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			end = len(text)
		} else {
			// Look for a whitespace break in the back half of the window.
			window := text[start:end]
			if cut := strings.LastIndexAny(window, " \t\n"); cut > size/2 {
				end = start + cut
			}
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(text) {
			break
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
