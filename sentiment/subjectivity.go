package sentiment

import "strings"

// Subjectivity estimates how opinionated a text is, in [0, 1]. Each opinion
// word found in the lexicon contributes its subjectivity, scaled by a
// preceding intensifier; the score is the mean over those words. Text with
// no opinion words scores 0.
type Subjectivity struct {
	lexicon map[string]assessment
}

// NewSubjectivity returns a Subjectivity scorer over the built-in lexicon.
func NewSubjectivity() *Subjectivity {
	return &Subjectivity{lexicon: opinions}
}

// Score returns the subjectivity of text.
func (s *Subjectivity) Score(text string) float64 {
	var total float64
	var n int

	tokens := tokenize(text)
	for i, tok := range tokens {
		lower := strings.ToLower(tok)
		a, ok := s.lexicon[lower]
		if !ok {
			continue
		}
		// An intensifier directly before another opinion word only scales it.
		if _, isIntensifier := intensifiers[lower]; isIntensifier && i+1 < len(tokens) {
			if _, next := s.lexicon[strings.ToLower(tokens[i+1])]; next {
				continue
			}
		}

		subj := a.subjectivity
		if i > 0 {
			if m, ok := intensifiers[strings.ToLower(tokens[i-1])]; ok {
				subj *= m
			}
		}
		total += clamp(subj, 0, 1)
		n++
	}

	if n == 0 {
		return 0
	}
	return clamp(total/float64(n), 0, 1)
}
