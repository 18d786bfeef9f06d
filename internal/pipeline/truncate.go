package pipeline

// boundaryFloor is how far into the truncation window a sentence
// boundary must fall to be used as the cut point.
const boundaryFloor = 0.7

// Truncate caps text at limit characters. Text over the limit is cut at
// the limit, then the cut moves back to the nearest '.', '!' or '?' if
// one falls at or past 70% of the limit, keeping the punctuation.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := runes[:limit]
	floor := int(float64(limit) * boundaryFloor)
	for i := len(cut) - 1; i >= floor; i-- {
		switch cut[i] {
		case '.', '!', '?':
			return string(cut[:i+1])
		}
	}

	return string(cut)
}
