package embedding

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// vocabulary is an immutable fitted TF-IDF model. Features are ordered
// alphabetically; idf uses the smoothed form ln((1+n)/(1+df)) + 1.
type vocabulary struct {
	index map[string]int
	idf   []float64
}

// fitVocabulary learns terms and idf weights from a corpus, keeping at most
// maxFeatures terms ranked by total corpus frequency.
func fitVocabulary(corpus []string, maxFeatures int) (*vocabulary, error) {
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			termFreq[tok]++
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	if len(termFreq) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(termFreq))
	for term := range termFreq {
		terms = append(terms, term)
	}

	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termFreq[terms[i]] != termFreq[terms[j]] {
				return termFreq[terms[i]] > termFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	v := &vocabulary{
		index: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, term := range terms {
		v.index[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v, nil
}

// size returns the natural output width of the model.
func (v *vocabulary) size() int {
	return len(v.idf)
}

// transform returns the l2-normalized tf-idf row for text. Terms outside the
// vocabulary are ignored, so unseen text may produce an all-zero row.
func (v *vocabulary) transform(text string) []float64 {
	row := make([]float64, v.size())
	for _, tok := range tokenize(text) {
		if i, ok := v.index[tok]; ok {
			row[i]++
		}
	}

	var norm float64
	for i := range row {
		row[i] *= v.idf[i]
		norm += row[i] * row[i]
	}
	if norm == 0 {
		return row
	}
	norm = math.Sqrt(norm)
	for i := range row {
		row[i] /= norm
	}
	return row
}

// tokenize lowercases text and returns word runs of two or more letters,
// digits or underscores, skipping English stop words.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) < 2 || stopWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

var stopWords = func() map[string]bool {
	list := `a about above across after afterwards again against all almost alone along
already also although always am among amongst amoungst amount an and another any
anyhow anyone anything anyway anywhere are around as at back be became because
become becomes becoming been before beforehand behind being below beside besides
between beyond bill both bottom but by call can cannot cant co con could couldnt
cry de describe detail do done down due during each eg eight either eleven else
elsewhere empty enough etc even ever every everyone everything everywhere except
few fifteen fifty fill find fire first five for former formerly forty found four
from front full further get give go had has hasnt have he hence her here hereafter
hereby herein hereupon hers herself him himself his how however hundred i ie if in
inc indeed interest into is it its itself keep last latter latterly least less ltd
made many may me meanwhile might mill mine more moreover most mostly move much must
my myself name namely neither never nevertheless next nine no nobody none noone nor
not nothing now nowhere of off often on once one only onto or other others otherwise
our ours ourselves out over own part per perhaps please put rather re same see seem
seemed seeming seems serious several she should show side since sincere six sixty so
some somehow someone something sometime sometimes somewhere still such system take
ten than that the their them themselves then thence there thereafter thereby
therefore therein thereupon these they thick thin third this those though three
through throughout thru thus to together too top toward towards twelve twenty two un
under until up upon us very via was we well were what whatever when whence whenever
where whereafter whereas whereby wherein whereupon wherever whether which while
whither who whoever whole whom whose why will with within without would yet you your
yours yourself yourselves`
	m := make(map[string]bool)
	for _, w := range strings.Fields(list) {
		m[w] = true
	}
	return m
}()
