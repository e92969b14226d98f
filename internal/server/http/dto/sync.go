package dto

// SyncResultPayload mirrors per-batch sync counters.
type SyncResultPayload struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// SyncOrdersRequest pushes a batch of orders to the spreadsheet ledger.
type SyncOrdersRequest struct {
	Orders       []OrderPayload  `json:"orders"`
	EmailSentMap map[string]bool `json:"emailSentMap"`
}

// SyncOrdersResponse reports ledger sync counters.
type SyncOrdersResponse struct {
	Success bool              `json:"success"`
	Result  SyncResultPayload `json:"result"`
}

// LedgerResponse returns the current ledger contents.
type LedgerResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Orders  []LedgerEntry `json:"orders"`
}

// LedgerEntry is one spreadsheet row on the wire.
type LedgerEntry struct {
	OrderID     string  `json:"orderId"`
	Email       string  `json:"email"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	EmailSent   bool    `json:"emailSent"`
	PaidAt      string  `json:"paidAt"`
}

// EmailAutomationRequest runs lifecycle email automation over orders.
type EmailAutomationRequest struct {
	Orders []OrderPayload `json:"orders"`
}

// EmailRunResult counts enqueued lifecycle emails.
type EmailRunResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// EmailAutomationResponse reports an automation run.
type EmailAutomationResponse struct {
	Success bool           `json:"success"`
	Result  EmailRunResult `json:"result"`
}

// EmailStatsResponse reports totals per lifecycle email kind.
type EmailStatsResponse struct {
	Success bool           `json:"success"`
	Stats   map[string]int `json:"stats"`
}

// ContactPayload is a CRM contact upsert candidate on the wire.
type ContactPayload struct {
	Email      string         `json:"email"`
	Country    string         `json:"country"`
	Attributes map[string]any `json:"attributes"`
}

// ContactSyncRequest pushes a typed contact batch to the CRM.
type ContactSyncRequest struct {
	Type     string           `json:"type"`
	Contacts []ContactPayload `json:"contacts"`
}

// ContactSyncResponse reports CRM sync counters.
type ContactSyncResponse struct {
	Success bool              `json:"success"`
	Result  SyncResultPayload `json:"result"`
}

// ErrorResponse is the unified error body for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
