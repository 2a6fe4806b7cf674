package domain

// DirectoryEntry is a person account read from the directory service.
type DirectoryEntry struct {
	AccountName string
	DisplayName string
	Email       string
	Department  string
	Disabled    bool
}

// SyncReport summarizes one directory synchronization run.
type SyncReport struct {
	Found     int `json:"found"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
