package usecase

import "context"

// Publisher emits fire-and-forget domain events. Failures are logged by the
// caller and never propagated; events are not recoverable state.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Event subjects emitted by the usecases.
const (
	SubjectProductCreated = "product.created"
	SubjectProductSold    = "product.sold"
	SubjectReviewCreated  = "review.created"
)
