package sentiment

import (
	"math"
	"strings"
)

// alpha approximates the maximum expected raw sum when normalizing.
const alpha = 15.0

// Vader computes a compound polarity score in [-1, 1] using a valence
// lexicon plus the usual heuristics for informal text: booster words,
// negation within three tokens, ALL-CAPS emphasis, contrastive "but" and
// exclamation marks.
type Vader struct {
	lexicon map[string]float64
}

// NewVader returns a Vader scorer over the built-in lexicon.
func NewVader() *Vader {
	return &Vader{lexicon: valence}
}

// Score returns the compound score of text. Empty text scores 0.
func (v *Vader) Score(text string) float64 {
	tokens := tokenize(text)

	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isWord(tok) {
			words = append(words, tok)
		}
	}
	if len(words) == 0 {
		return 0
	}

	capsDiff := capsDifferential(words)
	scores := make([]float64, len(words))

	for i, w := range words {
		lower := strings.ToLower(w)
		if _, ok := boosters[lower]; ok {
			continue
		}
		val, ok := v.lexicon[lower]
		if !ok {
			continue
		}
		if capsDiff && isAllCaps(w) {
			val += sign(val) * capsIncr
		}

		for j := 1; j <= 3 && i-j >= 0; j++ {
			prev := words[i-j]
			prevLower := strings.ToLower(prev)
			if b, ok := boosters[prevLower]; ok {
				scalar := b * sign(val)
				if capsDiff && isAllCaps(prev) {
					scalar += sign(val) * capsIncr
				}
				switch j {
				case 2:
					scalar *= 0.95
				case 3:
					scalar *= 0.9
				}
				val += scalar
			}
			if _, ok := negations[prevLower]; ok {
				val *= negScalar
			}
		}
		scores[i] = val
	}

	applyButShift(words, scores)

	var sum float64
	for _, s := range scores {
		sum += s
	}
	if sum == 0 {
		return 0
	}

	sum += sign(sum) * punctuationEmphasis(text)
	return clamp(sum/math.Sqrt(sum*sum+alpha), -1, 1)
}

// applyButShift halves sentiment before the first "but" and boosts it after.
func applyButShift(words []string, scores []float64) {
	for i, w := range words {
		if strings.ToLower(w) != "but" {
			continue
		}
		for j := range scores {
			switch {
			case j < i:
				scores[j] *= 0.5
			case j > i:
				scores[j] *= 1.5
			}
		}
		return
	}
}

func punctuationEmphasis(text string) float64 {
	bangs := strings.Count(text, "!")
	if bangs > 4 {
		bangs = 4
	}
	emphasis := float64(bangs) * 0.292

	if q := strings.Count(text, "?"); q > 1 {
		if q <= 3 {
			emphasis += float64(q) * 0.18
		} else {
			emphasis += 0.96
		}
	}
	return emphasis
}

// capsDifferential reports whether some, but not all, words are upper case.
func capsDifferential(words []string) bool {
	caps := 0
	for _, w := range words {
		if isAllCaps(w) {
			caps++
		}
	}
	return caps > 0 && caps < len(words)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
