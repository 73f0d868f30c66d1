package classify

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/vkarpenko/freightgate/internal/core/domain"
	"github.com/vkarpenko/freightgate/internal/core/ports"
)

const (
	minSimilarityTextLen = 10
	maxEmbedTextLen      = 5000

	// Per-label aggregation: the top-scoring sample carries 60% of the
	// label's confidence, the mean of its remaining samples carries 40%.
	topSampleWeight  = 0.6
	restSampleWeight = 0.4
)

// EmbeddingMatcher compares an input text embedding against the labeled
// sample library via cosine similarity. Every failure mode (no backend, empty
// library, embedding error) degrades to abstention, never to an error.
type EmbeddingMatcher struct {
	embedder ports.Embedder
	library  ports.SampleLibrary
	logger   *slog.Logger
}

func NewEmbeddingMatcher(embedder ports.Embedder, library ports.SampleLibrary, logger *slog.Logger) *EmbeddingMatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddingMatcher{
		embedder: embedder,
		library:  library,
		logger:   logger,
	}
}

// Match returns the embedding signal for the given text, or an abstaining
// signal when matching is not possible.
func (m *EmbeddingMatcher) Match(ctx context.Context, text string) domain.Signal {
	if m == nil || m.embedder == nil || m.library == nil {
		return domain.Signal{}
	}
	if len(strings.TrimSpace(text)) < minSimilarityTextLen {
		return domain.Signal{}
	}

	samples, err := m.library.ActiveSamples(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "sample library unavailable", "error", err)
		return domain.Signal{}
	}

	embedded := make([]domain.LabeledSample, 0, len(samples))
	for _, s := range samples {
		if len(s.Embedding) > 0 {
			embedded = append(embedded, s)
		}
	}
	if len(embedded) == 0 {
		return domain.Signal{}
	}

	query := text
	if len(query) > maxEmbedTextLen {
		query = query[:maxEmbedTextLen]
	}
	vector, err := m.embedder.EmbedQuery(ctx, query)
	if err != nil || len(vector) == 0 {
		m.logger.WarnContext(ctx, "query embedding failed", "error", err)
		return domain.Signal{}
	}

	return bestLabelMatch(vector, embedded)
}

type scoredSample struct {
	sample domain.LabeledSample
	score  float64
}

// bestLabelMatch aggregates per-sample similarities by label and picks the
// label with the highest aggregated confidence. Ties resolve to the type
// declared earlier in domain.DocumentTypes.
func bestLabelMatch(query []float32, samples []domain.LabeledSample) domain.Signal {
	byLabel := make(map[domain.DocumentType][]scoredSample, len(domain.DocumentTypes))
	for _, s := range samples {
		score := cosineSimilarity(query, s.Embedding)
		byLabel[s.DocType] = append(byLabel[s.DocType], scoredSample{sample: s, score: score})
	}

	var (
		best       domain.DocumentType
		bestConf   float64
		bestSample string
		found      bool
	)
	for _, docType := range domain.DocumentTypes {
		group := byLabel[docType]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].score > group[j].score })

		confidence := group[0].score
		if len(group) > 1 {
			var rest float64
			for _, s := range group[1:] {
				rest += s.score
			}
			rest /= float64(len(group) - 1)
			confidence = group[0].score*topSampleWeight + rest*restSampleWeight
		}

		if !found || confidence > bestConf {
			found = true
			best = docType
			bestConf = confidence
			bestSample = group[0].sample.ID
		}
	}

	if !found {
		return domain.Signal{}
	}
	return domain.Signal{
		DocType:         best,
		Confidence:      bestConf,
		MatchedSampleID: bestSample,
	}
}

// cosineSimilarity computes cosine similarity mapped from [-1,1] to [0,1].
// Malformed vectors (zero norm, length mismatch) score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cos + 1) / 2
}
