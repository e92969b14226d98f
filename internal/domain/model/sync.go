package model

// SyncResult summarizes one fan-out invocation. It is ephemeral and never
// persisted.
type SyncResult struct {
	Synced int
	Failed int
	Total  int
}

// LedgerEntry is one row of the external spreadsheet order ledger.
type LedgerEntry struct {
	OrderID     string
	Email       string
	TotalAmount float64
	Currency    string
	Status      string
	EmailSent   bool
	PaidAt      string
}
