// Package scoring rates candidate plaintexts for English likeness.
//
// The score is a pure function of the byte content, in [0.0, 2.0]:
//
//	< 1.0  payload contains non-printable bytes; the value is the
//	       printable ratio itself
//	>= 1.0 fully printable; 1.0 plus a weighted English score combining
//	       letter-frequency chi-squared distance, common-word matching,
//	       and a word-spacing bonus
//
// The reference frequency table is compiled in; the common-word list is
// embedded and loaded once per Scorer.
package scoring

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var embeddedWords []byte

// englishFreq holds relative A-Z letter frequencies of English text.
var englishFreq = [26]float64{
	'A' - 'A': 0.0817,
	'B' - 'A': 0.0149,
	'C' - 'A': 0.0278,
	'D' - 'A': 0.0425,
	'E' - 'A': 0.1270,
	'F' - 'A': 0.0223,
	'G' - 'A': 0.0202,
	'H' - 'A': 0.0609,
	'I' - 'A': 0.0697,
	'J' - 'A': 0.0015,
	'K' - 'A': 0.0077,
	'L' - 'A': 0.0403,
	'M' - 'A': 0.0241,
	'N' - 'A': 0.0675,
	'O' - 'A': 0.0751,
	'P' - 'A': 0.0193,
	'Q' - 'A': 0.0010,
	'R' - 'A': 0.0599,
	'S' - 'A': 0.0633,
	'T' - 'A': 0.0906,
	'U' - 'A': 0.0276,
	'V' - 'A': 0.0098,
	'W' - 'A': 0.0236,
	'X' - 'A': 0.0015,
	'Y' - 'A': 0.0197,
	'Z' - 'A': 0.0007,
}

// chiNorm normalizes the chi-squared statistic to [0, 1]. At 500, natural
// English of 20+ characters lands around 0.9 while uniform random
// printable ASCII (chi-squared in the thousands) clamps to 0.
const chiNorm = 500.0

// Sub-score weights and the space-bonus ramp boundaries.
const (
	freqWeight = 0.7
	wordWeight = 0.3

	spaceBonusPeak = 0.2
	spaceRampLo    = 0.05
	spacePeakLo    = 0.15
	spacePeakHi    = 0.20
	spaceRampHi    = 0.35
)

// Scorer scores byte buffers against a fixed common-word set. Safe for
// concurrent use after construction; the word set is read-only.
type Scorer struct {
	words map[string]struct{}
}

// NewScorer builds a scorer over the given word list. Words are
// uppercased; empties are skipped.
func NewScorer(words []string) *Scorer {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &Scorer{words: set}
}

// Default returns a scorer over the embedded common-word list.
func Default() *Scorer {
	s, err := readWords(bytes.NewReader(embeddedWords))
	if err != nil {
		// The embedded list is compiled in; a read failure is a build
		// defect, not a runtime condition.
		panic(fmt.Sprintf("scoring: embedded word list: %v", err))
	}
	return s
}

// FromFile returns a scorer over a caller-supplied word list, one word
// per line.
func FromFile(path string) (*Scorer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	s, err := readWords(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return s, nil
}

func readWords(r io.Reader) (*Scorer, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewScorer(words), nil
}

// WordCount reports the loaded word-set size.
func (s *Scorer) WordCount() int {
	return len(s.words)
}

// PrintableRatio returns the fraction of bytes in ASCII 32..126 or
// tab/newline/carriage-return. Empty input is 0.
func PrintableRatio(b []byte) float64 {
	if len(b) == 0 {
		return 0.0
	}
	printable := 0
	for _, x := range b {
		if (x >= 32 && x < 127) || x == '\t' || x == '\n' || x == '\r' {
			printable++
		}
	}
	return float64(printable) / float64(len(b))
}

// Score rates a final payload. Deterministic: same bytes, same score.
func (s *Scorer) Score(b []byte) float64 {
	pr := PrintableRatio(b)
	if pr < 1.0 {
		return pr
	}

	text := string(b)
	english := freqWeight*freqScore(text) + wordWeight*s.wordScore(text) + spaceBonus(text)
	if english < 0 {
		english = 0
	}
	if english > 1 {
		english = 1
	}
	return 1.0 + english
}

// freqScore is the chi-squared distance between observed A-Z frequencies
// (case-folded, non-letters ignored) and the English reference table,
// mapped to [0, 1] where 1 is a perfect frequency match.
func freqScore(text string) float64 {
	var counts [26]int
	total := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			counts[c-'A']++
			total++
		}
	}
	if total == 0 {
		return 0.0
	}

	chi := 0.0
	for i := 0; i < 26; i++ {
		expected := englishFreq[i] * float64(total)
		diff := float64(counts[i]) - expected
		chi += diff * diff / expected
	}

	score := 1.0 - chi/chiNorm
	if score < 0 {
		return 0.0
	}
	return score
}

// wordScore is the fraction of alphabetic tokens present in the word set.
func (s *Scorer) wordScore(text string) float64 {
	if len(s.words) == 0 {
		return 0.0
	}
	tokens := 0
	recognized := 0
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		tokens++
		if _, ok := s.words[strings.ToUpper(text[start:end])]; ok {
			recognized++
		}
		start = -1
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		alpha := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
		if alpha {
			if start < 0 {
				start = i
			}
		} else {
			flush(i)
		}
	}
	flush(len(text))

	if tokens == 0 {
		return 0.0
	}
	return float64(recognized) / float64(tokens)
}

// spaceBonus rewards a space ratio typical of worded English: a triangular
// ramp peaking at spaceBonusPeak on [spacePeakLo, spacePeakHi], decaying
// linearly to zero at spaceRampLo and spaceRampHi.
func spaceBonus(text string) float64 {
	if len(text) == 0 {
		return 0.0
	}
	ratio := float64(strings.Count(text, " ")) / float64(len(text))
	switch {
	case ratio <= spaceRampLo || ratio >= spaceRampHi:
		return 0.0
	case ratio < spacePeakLo:
		return spaceBonusPeak * (ratio - spaceRampLo) / (spacePeakLo - spaceRampLo)
	case ratio <= spacePeakHi:
		return spaceBonusPeak
	default:
		return spaceBonusPeak * (spaceRampHi - ratio) / (spaceRampHi - spacePeakHi)
	}
}
