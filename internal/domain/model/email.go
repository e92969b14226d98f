package model

// EmailKind identifies a lifecycle email in the post-purchase automation.
type EmailKind string

const (
	EmailKindConfirmation EmailKind = "confirmation"
	EmailKindFollowUp     EmailKind = "follow_up"
)

// EmailJob is a queued request to send one lifecycle email.
type EmailJob struct {
	OrderID string
	Email   string
	Kind    EmailKind
}
