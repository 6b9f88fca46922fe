package metrics

// result labels for AccountLinkTotal
const (
	LinkResultSuccess            = "success"
	LinkResultDuplicate          = "duplicate"
	LinkResultVerificationFailed = "verification_failed"
	LinkResultError              = "error"
)
