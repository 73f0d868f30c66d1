package classify

import (
	"context"
	"log/slog"

	"github.com/vkarpenko/freightgate/internal/core/domain"
	"github.com/vkarpenko/freightgate/internal/core/ports"
)

// visionTextExcerpt bounds how much OCR text accompanies the image.
const visionTextExcerpt = 2000

// visionSignal fronts the external vision model. Transport errors, malformed
// responses and a missing image all collapse into abstention so the model's
// availability never dictates whether classification succeeds.
type visionSignal struct {
	model  ports.VisionModel
	logger *slog.Logger
}

func (v visionSignal) run(ctx context.Context, image []byte, text string) domain.Signal {
	if v.model == nil || len(image) == 0 {
		return domain.Signal{}
	}

	excerpt := text
	if len(excerpt) > visionTextExcerpt {
		excerpt = excerpt[:visionTextExcerpt]
	}

	signal, err := v.model.ClassifyDocument(ctx, image, excerpt)
	if err != nil {
		v.logger.WarnContext(ctx, "vision model signal failed", "error", err)
		return domain.Signal{}
	}
	return signal
}
