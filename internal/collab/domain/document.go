package domain

import "time"

// DocumentKind distinguishes the two collaborative document types the
// portal supports.
type DocumentKind string

const (
	KindProposal   DocumentKind = "proposal"
	KindManuscript DocumentKind = "manuscript"
)

// Valid reports whether k is a known document kind.
func (k DocumentKind) Valid() bool {
	return k == KindProposal || k == KindManuscript
}

// Document is the live-editing surface of a manuscript or grant proposal.
// Its version history lives in DocumentVersion rows; "current version" is
// always the highest version number, never a pointer on this record.
type Document struct {
	ID               string
	Kind             DocumentKind
	CreatorAccountID string
	Title            string
	Content          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
