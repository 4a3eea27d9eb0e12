package models

import "time"

// CommitRecord is one commit of a branch history
type CommitRecord struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Parents []string  `json:"parents"`
	Date    time.Time `json:"date"`
	Subject string    `json:"subject"`
}

// DiffRecord is one classified path change between two commits
type DiffRecord struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	OldPath string `json:"old_path,omitempty"`
	NewPath string `json:"new_path,omitempty"`
}

// DiffReport lists the changes between two commits
type DiffReport struct {
	From    string       `json:"from"`
	To      string       `json:"to"`
	Changes []DiffRecord `json:"changes"`
}

// OwnershipRecord is the number of commits an author made to a path
type OwnershipRecord struct {
	Author string `json:"author"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

// OwnershipReport is the full ownership map of a branch plus the entries
// above the threshold
type OwnershipReport struct {
	Branch      string            `json:"branch"`
	Threshold   int               `json:"threshold"`
	GeneratedAt time.Time         `json:"generated_at"`
	Entries     []OwnershipRecord `json:"entries"`
	AboveLimit  []OwnershipRecord `json:"above_threshold,omitempty"`
}
