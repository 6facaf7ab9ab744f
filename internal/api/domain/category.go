package domain

// Category is the ledger resource guarded by the authorization rules.
type Category struct {
	Code int64  `json:"codigo"`
	Name string `json:"nome"`
}
