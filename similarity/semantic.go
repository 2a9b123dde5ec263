package similarity

import (
	"math"
	"sync"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/zeebo/xxh3"
)

// semanticDimensions sizes the hashed bag-of-words feature vector. A
// fixed, modest width keeps the encoder O(1) in vocabulary size (the
// "hashing trick": no vocabulary table, collisions are accepted as
// noise) while still giving distinct short texts distinct vectors in
// practice.
const semanticDimensions = 256

// Encoder produces a fixed-dimension, L2-normalized embedding for a
// text. Semantic is explicitly a replaceable capability: a production
// deployment can swap in a real transformer encoder behind this
// interface so long as it satisfies the same three properties the
// default hashEncoder does — constant dimensionality, cosine(x,x)=1.0
// within 1e-6, and determinism given fixed weights.
type Encoder interface {
	Encode(text string) ([]float64, error)
	Dimensions() int
}

var (
	encoderMu     sync.RWMutex
	activeEncoder Encoder = hashEncoder{}
)

// SetEncoder swaps the package-level Semantic encoder, e.g. to inject a
// real embedding model in production or a fixed-vector stub in tests.
// Passing nil restores the default hash-based encoder.
func SetEncoder(e Encoder) {
	encoderMu.Lock()
	defer encoderMu.Unlock()
	if e == nil {
		e = hashEncoder{}
	}
	activeEncoder = e
}

func currentEncoder() Encoder {
	encoderMu.RLock()
	defer encoderMu.RUnlock()
	return activeEncoder
}

// semanticScore estimates meaning-level similarity via the active
// Encoder's cosine similarity. The cross-language penalty (when
// detected languages differ) is applied by the caller, Score, since it
// is a property of the pair, not the encoder.
func semanticScore(a, b string) (float64, error) {
	enc := currentEncoder()
	vecA, err := enc.Encode(a)
	if err != nil {
		return 0, err
	}
	vecB, err := enc.Encode(b)
	if err != nil {
		return 0, err
	}
	score := cosineSimilarity(vecA, vecB)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}

// Encode exposes the active encoder's embedding for callers outside this
// package — namely the engine façade, which caches embeddings per
// corpus item under the Semantic method rather than recomputing them on
// every deduplicate() call.
func Encode(text string) ([]float64, error) {
	return currentEncoder().Encode(text)
}

// CosineFromVectors compares two already-computed embeddings, clamped to
// [0,1] exactly as semanticScore clamps a freshly-encoded pair. Exported
// for the engine façade's cached Semantic scoring path.
func CosineFromVectors(a, b []float64) float64 {
	score := cosineSimilarity(a, b)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// hashEncoder is the default Semantic encoder: each text is tokenized
// into words (Unicode word segmentation, so this holds up across
// scripts that don't use ASCII whitespace) and folded into a
// fixed-width term-frequency vector via feature hashing (xxh3, the same
// hash family fulhash uses elsewhere in this module), then
// L2-normalized. This is a deterministic, dependency-light stand-in for
// the embeddings a production deployment would inject behind Encoder;
// it captures bag-of-words overlap, not true paraphrase detection.
type hashEncoder struct{}

func (hashEncoder) Dimensions() int { return semanticDimensions }

func (hashEncoder) Encode(text string) ([]float64, error) {
	var vec [semanticDimensions]float64
	seg := words.NewSegmenter([]byte(text))
	for seg.Next() {
		token := seg.Value()
		if !isWordlike(token) {
			continue
		}
		h := xxh3.Hash(token)
		bucket := h % semanticDimensions
		vec[bucket]++
	}
	return l2Normalize(vec[:]), nil
}

// isWordlike filters uax29 word-boundary tokens down to ones carrying
// at least one letter or digit, excluding pure whitespace/punctuation
// segments the segmenter also yields as tokens.
func isWordlike(token []byte) bool {
	for _, r := range string(token) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func l2Normalize(vec []float64) []float64 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += v * v
	}
	if sumSquares == 0 {
		return vec
	}
	norm := math.Sqrt(sumSquares)
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}

func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 && normB == 0 {
		return 1.0
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
