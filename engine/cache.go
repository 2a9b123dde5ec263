package engine

import (
	"fmt"
	"sync"

	"github.com/loomtext/dedupweave/fulhash"
	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/normalize"
	"github.com/loomtext/dedupweave/similarity"
	"github.com/loomtext/dedupweave/strategy"
	"github.com/loomtext/dedupweave/telemetry"
	"github.com/loomtext/dedupweave/telemetry/metrics"
)

// embeddingCache memoizes Semantic-method embeddings per corpus item,
// keyed by (item index, strategy fingerprint) so a strategy change never
// serves a stale embedding computed under different normalization
// rules. It is safe for concurrent use since deduplicate's Semantic
// path may fan candidate scoring out across a worker pool.
type embeddingCache struct {
	mu      sync.Mutex
	vectors map[string][]float64
}

func newEmbeddingCache() *embeddingCache {
	return &embeddingCache{vectors: make(map[string][]float64)}
}

// fingerprintFor derives a stable fingerprint for s from its canonical
// JSON encoding via fulhash.
func (c *embeddingCache) fingerprintFor(s strategy.Strategy) string {
	canonical, err := strategy.MarshalCanonical(s)
	if err != nil {
		return ""
	}
	digest, err := fulhash.HashString(string(canonical))
	if err != nil {
		return ""
	}
	return digest.Hex()
}

// embeddingFor returns the cached embedding for corpus item index under
// fingerprint, computing and storing it on a miss. text is normalized
// under s/lang/resources before encoding, matching what Compare would
// feed the encoder for a non-cached comparison.
func (c *embeddingCache) embeddingFor(index int, text string, s strategy.Strategy, lang string, resources *langres.Resources, fingerprint string) ([]float64, error) {
	key := fmt.Sprintf("%d:%s", index, fingerprint)

	c.mu.Lock()
	if vec, ok := c.vectors[key]; ok {
		c.mu.Unlock()
		telemetry.EmitCounter(metrics.EngineCacheHitsTotal, 1, nil)
		return vec, nil
	}
	c.mu.Unlock()

	normalized := normalize.Text(text, s, lang, resources)
	vec, err := similarity.Encode(normalized)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.vectors[key] = vec
	c.mu.Unlock()

	telemetry.EmitCounter(metrics.EngineCacheMissesTotal, 1, nil)
	return vec, nil
}
