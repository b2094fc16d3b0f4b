package usecase

// Mailer delivers notification emails to sellers. Implementations must be
// safe for concurrent use; delivery failures are logged by the caller and
// never fail the triggering operation.
type Mailer interface {
	SendReviewReceived(toEmail, productTitle string) error
	SendProductSold(toEmail, productTitle string) error
}
