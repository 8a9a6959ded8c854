package ranking

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// MaxFeatures caps the shared vocabulary at the most frequent terms across
// the corpus. Beyond this, additional terms add noise rather than signal.
const MaxFeatures = 5000

// tokenRE matches word tokens of at least two characters, mirroring the
// usual bag-of-words token pattern.
var tokenRE = regexp.MustCompile(`\w\w+`)

// tokenize lowercases a document and splits it into non-stop-word tokens.
func tokenize(doc string) []string {
	raw := tokenRE.FindAllString(strings.ToLower(doc), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if !isStopWord(t) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// vectorizer holds a fitted vocabulary with smoothed inverse document
// frequencies. The vocabulary is rebuilt for every ranking call, so scores
// are comparable only within one call.
type vectorizer struct {
	vocab map[string]int // term -> index
	idf   []float64
}

// fitVectorizer builds the vocabulary over the tokenized corpus, keeping at
// most MaxFeatures terms selected by total corpus frequency (ties broken
// alphabetically for determinism).
func fitVectorizer(docs [][]string) *vectorizer {
	termCount := make(map[string]int)
	docFreq := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			termCount[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	terms := make([]string, 0, len(termCount))
	for t := range termCount {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termCount[terms[i]] != termCount[terms[j]] {
			return termCount[terms[i]] > termCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > MaxFeatures {
		terms = terms[:MaxFeatures]
	}
	// Index terms alphabetically so the vector layout is stable regardless
	// of frequency ordering.
	sort.Strings(terms)

	v := &vectorizer{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, t := range terms {
		v.vocab[t] = i
		// Smoothed IDF; never zero, never divides by zero on unseen terms.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	return v
}

// transform maps a tokenized document to an L2-normalized sparse TF-IDF
// vector. An empty document yields an empty (all-zero) vector.
func (v *vectorizer) transform(tokens []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, t := range tokens {
		if idx, ok := v.vocab[t]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for idx := range vec {
		vec[idx] *= v.idf[idx]
		norm += vec[idx] * vec[idx]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// dot computes the dot product of two sparse vectors. With L2-normalized
// rows this is the cosine similarity.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, av := range a {
		sum += av * b[idx]
	}
	return sum
}
