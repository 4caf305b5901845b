package domain

import "time"

// VersionType records why a version was written.
type VersionType string

const (
	// VersionManual is an explicit save by a collaborator.
	VersionManual VersionType = "MANUAL"
	// VersionAuto is written by the system, e.g. the pre-restore backup.
	VersionAuto VersionType = "AUTO"
	// VersionMilestone tags a significant save (submission, review round).
	VersionMilestone VersionType = "MILESTONE"
	// VersionRestore is the copy written when an older version is restored.
	VersionRestore VersionType = "RESTORE"
)

// Valid reports whether t is a known version type.
func (t VersionType) Valid() bool {
	switch t {
	case VersionManual, VersionAuto, VersionMilestone, VersionRestore:
		return true
	}
	return false
}

// DocumentVersion is an immutable snapshot of a document's title and
// content. Version numbers per document are gapless and strictly increasing
// in creation order; the highest number is the current version.
type DocumentVersion struct {
	ID               string
	DocumentID       string
	VersionNumber    int64
	Title            string
	Content          string
	Description      string
	VersionType      VersionType
	CreatorAccountID string
	WordCount        int64
	CreatedAt        time.Time
}
