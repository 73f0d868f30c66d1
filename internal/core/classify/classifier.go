// Package classify implements the multi-signal document type classifier:
// an embedding-similarity signal, a keyword signal and a vision-model signal
// combined by weighted voting, with early exits ordered by signal cost.
package classify

import (
	"context"
	"log/slog"

	"github.com/vkarpenko/freightgate/internal/core/domain"
	"github.com/vkarpenko/freightgate/internal/core/ports"
)

// Early-exit thresholds and voting weights. The weights are fixed by design;
// final confidence is normalized by the sum of weights that actually voted,
// so a single-signal result keeps its own confidence instead of collapsing
// to a fraction of it.
const (
	embeddingExitThreshold = 0.72
	keywordExitThreshold   = 0.55
	agreementEmbeddingMin  = 0.60

	weightEmbedding = 0.45
	weightVision    = 0.35
	weightKeyword   = 0.20

	// Agreement exit blends the two concurring signals.
	agreementEmbeddingShare = 0.7
	agreementKeywordShare   = 0.3

	maxEvidence = 5
)

const (
	signalEmbedding = "embedding"
	signalKeyword   = "keyword"
	signalVision    = "vision"
)

// Classifier orchestrates the three signals in cost order. It is stateless
// per call; the sample library is read fresh on every classification.
type Classifier struct {
	embedding *EmbeddingMatcher
	keyword   KeywordClassifier
	vision    visionSignal
	logger    *slog.Logger
}

// New wires a classifier from its collaborators. Both embedder/library and
// vision may be nil; the corresponding signals then abstain and the
// classifier degrades to whatever remains.
func New(embedder ports.Embedder, library ports.SampleLibrary, vision ports.VisionModel, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	var matcher *EmbeddingMatcher
	if embedder != nil && library != nil {
		matcher = NewEmbeddingMatcher(embedder, library, logger)
	}
	return &Classifier{
		embedding: matcher,
		vision:    visionSignal{model: vision, logger: logger},
		logger:    logger,
	}
}

// Classify runs the multi-signal classification for one document. It never
// returns an error: every signal failure degrades to abstention and the
// worst case is an Unknown result with zero confidence.
func (c *Classifier) Classify(ctx context.Context, text string, image []byte) domain.ClassificationResult {
	var signalsUsed []string

	embSignal := c.embedding.Match(ctx, text)
	if embSignal.Voted() {
		signalsUsed = append(signalsUsed, signalEmbedding)
		c.logger.DebugContext(ctx, "embedding signal",
			"doc_type", embSignal.DocType, "confidence", embSignal.Confidence)

		if embSignal.Confidence >= embeddingExitThreshold {
			return c.buildResult(embSignal.DocType, embSignal.Confidence,
				"embedding_high_confidence", signalsUsed, embSignal, nil)
		}
	}

	kwSignal := c.keyword.Classify(text)
	if kwSignal.Voted() {
		signalsUsed = append(signalsUsed, signalKeyword)
		c.logger.DebugContext(ctx, "keyword signal",
			"doc_type", kwSignal.DocType, "confidence", kwSignal.Confidence)

		if embSignal.Voted() &&
			embSignal.DocType == kwSignal.DocType &&
			embSignal.Confidence >= agreementEmbeddingMin &&
			kwSignal.Confidence >= keywordExitThreshold {
			combined := embSignal.Confidence*agreementEmbeddingShare + kwSignal.Confidence*agreementKeywordShare
			return c.buildResult(embSignal.DocType, combined,
				"embedding+keyword_agreed", signalsUsed, embSignal, kwSignal.Evidence)
		}
	}

	// The vision model is the only network-bound signal; it is invoked only
	// once the cheaper signals have failed to clear their thresholds.
	var visSignal domain.Signal
	if embSignal.Confidence < embeddingExitThreshold || kwSignal.Confidence < keywordExitThreshold {
		visSignal = c.vision.run(ctx, image, text)
		if visSignal.Voted() {
			signalsUsed = append(signalsUsed, signalVision)
			c.logger.DebugContext(ctx, "vision signal",
				"doc_type", visSignal.DocType, "confidence", visSignal.Confidence)
		}
	}

	return c.vote(embSignal, kwSignal, visSignal, signalsUsed)
}

// vote combines every voting signal with fixed weights and normalizes by the
// total weight contributed. Candidate types are scanned in declared order so
// exact ties resolve deterministically.
func (c *Classifier) vote(emb, kw, vis domain.Signal, signalsUsed []string) domain.ClassificationResult {
	scores := make(map[domain.DocumentType]float64, 3)
	var contributed float64

	tally := func(s domain.Signal, weight float64) {
		if !s.Voted() {
			return
		}
		scores[s.DocType] += s.Confidence * weight
		contributed += weight
	}
	tally(emb, weightEmbedding)
	tally(vis, weightVision)
	tally(kw, weightKeyword)

	if len(scores) == 0 {
		return c.buildResult(domain.TypeUnknown, 0, "no_signals", nil, domain.Signal{}, nil)
	}

	var (
		winner domain.DocumentType
		best   float64
		found  bool
	)
	for _, docType := range domain.DocumentTypes {
		score, ok := scores[docType]
		if !ok {
			continue
		}
		if !found || score > best {
			found = true
			winner = docType
			best = score
		}
	}

	confidence := best / contributed

	method := "multi_signal_vote"
	if len(signalsUsed) == 1 {
		method = signalsUsed[0]
	}

	evidence := kw.Evidence
	if vis.Voted() && vis.DocType == winner {
		evidence = append(evidence, vis.Evidence...)
	}

	result := c.buildResult(winner, confidence, method, signalsUsed, emb, evidence)
	result.VoteBreakdown = map[string]domain.SignalVote{
		signalEmbedding: {DocType: emb.DocType, Confidence: emb.Confidence, Weight: weightEmbedding},
		signalVision:    {DocType: vis.DocType, Confidence: vis.Confidence, Weight: weightVision},
		signalKeyword:   {DocType: kw.DocType, Confidence: kw.Confidence, Weight: weightKeyword},
	}
	return result
}

func (c *Classifier) buildResult(
	docType domain.DocumentType,
	confidence float64,
	method string,
	signalsUsed []string,
	emb domain.Signal,
	evidence []string,
) domain.ClassificationResult {
	if len(evidence) == 0 && emb.Voted() {
		evidence = emb.Evidence
	}
	if len(evidence) > maxEvidence {
		evidence = evidence[:maxEvidence]
	}

	return domain.ClassificationResult{
		DocType:           docType,
		Confidence:        confidence,
		ConfidenceStatus:  domain.ConfidenceStatusFor(confidence),
		Method:            method,
		SignalsUsed:       signalsUsed,
		Evidence:          evidence,
		MatchedSampleID:   emb.MatchedSampleID,
		NeedsManualReview: confidence < domain.MinReviewConfidence,
	}
}
