package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/greyfield/scholarly/internal/collab/domain"
	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/pkg/idx"
	"github.com/greyfield/scholarly/pkg/slogx"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrVersionNotFound  = errors.New("version not found")
)

// versionRetries bounds the optimistic retry loop on the
// (document_id, version_number) uniqueness constraint.
const versionRetries = 3

// CreateVersionInput is the payload for an explicit snapshot.
type CreateVersionInput struct {
	Title       string
	Content     string
	Description string
	VersionType domain.VersionType
}

// VersionService is the append-only document version store. Snapshots are
// never mutated or deleted; the highest version number is the current one.
type VersionService struct {
	Store store.Store
}

// CreateVersion appends a snapshot for a document. Version numbers are
// assigned max+1 inside a transaction; a concurrent writer that takes the
// same number trips the uniqueness constraint and we retry with a fresh
// read.
func (s *VersionService) CreateVersion(ctx context.Context, documentID, creatorID string, in CreateVersionInput) (domain.DocumentVersion, error) {
	log := slogx.FromContext(ctx)

	if documentID == "" || creatorID == "" {
		return domain.DocumentVersion{}, ErrInvalidRequest
	}
	if !in.VersionType.Valid() {
		log.Warn("version rejected: unknown type", slog.String("type", string(in.VersionType)))
		return domain.DocumentVersion{}, ErrInvalidRequest
	}

	if _, err := s.requireDocument(ctx, documentID); err != nil {
		return domain.DocumentVersion{}, err
	}

	v := domain.DocumentVersion{
		DocumentID:       documentID,
		Title:            in.Title,
		Content:          in.Content,
		Description:      in.Description,
		VersionType:      in.VersionType,
		CreatorAccountID: creatorID,
		WordCount:        countWords(in.Content),
	}

	created, err := s.appendVersion(ctx, v, nil)
	if err != nil {
		return domain.DocumentVersion{}, err
	}

	log.Info("version created",
		slog.String("document_id", documentID),
		slog.String("version_id", created.ID),
		slog.Int64("version_number", created.VersionNumber),
		slog.String("type", string(created.VersionType)),
	)
	return created, nil
}

// GetVersion returns a single version, checking it belongs to the given
// document so a version id cannot be read through another document's URL.
func (s *VersionService) GetVersion(ctx context.Context, documentID, versionID string) (domain.DocumentVersion, error) {
	if _, err := s.requireDocument(ctx, documentID); err != nil {
		return domain.DocumentVersion{}, err
	}

	v, err := s.Store.Versions().GetVersionByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.DocumentVersion{}, ErrVersionNotFound
		}
		return domain.DocumentVersion{}, err
	}
	if v.DocumentID != documentID {
		return domain.DocumentVersion{}, ErrVersionNotFound
	}
	return v, nil
}

// ListVersions returns a document's history, newest first.
func (s *VersionService) ListVersions(ctx context.Context, documentID string) ([]domain.DocumentVersion, error) {
	if _, err := s.requireDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.Store.Versions().ListVersionsByDocument(ctx, documentID)
}

// RestoreVersion applies an older snapshot to the live document. The chain
// stays append-only: restoring never rewinds or deletes history. It
// performs the following steps:
// 1. If the live document state differs from the latest version, write an
//    AUTO backup of it first so nothing unsaved is lost
// 2. Append a RESTORE-type copy of the target snapshot and replace the live
//    document title/content with it, in one transaction
// The backup commits independently; a failure between the two steps leaves
// a valid AUTO version and an unchanged live document.
func (s *VersionService) RestoreVersion(ctx context.Context, documentID, versionID, restorerID string) (domain.DocumentVersion, error) {
	log := slogx.FromContext(ctx)

	doc, err := s.requireDocument(ctx, documentID)
	if err != nil {
		return domain.DocumentVersion{}, err
	}

	target, err := s.GetVersion(ctx, documentID, versionID)
	if err != nil {
		return domain.DocumentVersion{}, err
	}

	// 1. Backup unsaved live state.
	latest, err := s.Store.Versions().GetLatestVersion(ctx, documentID)
	liveDiffers := false
	switch {
	case err == nil:
		liveDiffers = doc.Title != latest.Title || doc.Content != latest.Content
	case errors.Is(err, store.ErrNotFound):
		liveDiffers = doc.Title != "" || doc.Content != ""
	default:
		return domain.DocumentVersion{}, err
	}

	if liveDiffers {
		backup := domain.DocumentVersion{
			DocumentID:       documentID,
			Title:            doc.Title,
			Content:          doc.Content,
			Description:      "Automatic backup before restore",
			VersionType:      domain.VersionAuto,
			CreatorAccountID: restorerID,
			WordCount:        countWords(doc.Content),
		}
		if _, err := s.appendVersion(ctx, backup, nil); err != nil {
			return domain.DocumentVersion{}, err
		}
	}

	// 2. Append the restore copy and swap the live state together.
	restored := domain.DocumentVersion{
		DocumentID:       documentID,
		Title:            target.Title,
		Content:          target.Content,
		Description:      "Restored from version " + strconv.FormatInt(target.VersionNumber, 10),
		VersionType:      domain.VersionRestore,
		CreatorAccountID: restorerID,
		WordCount:        target.WordCount,
	}
	restored, err = s.appendVersion(ctx, restored, func(tx store.Tx) error {
		return tx.Documents().UpdateDocumentContent(ctx, documentID, target.Title, target.Content)
	})
	if err != nil {
		return domain.DocumentVersion{}, err
	}

	log.Info("version restored",
		slog.String("document_id", documentID),
		slog.String("source_version_id", target.ID),
		slog.Int64("new_version_number", restored.VersionNumber),
		slog.Bool("auto_backup", liveDiffers),
	)
	return restored, nil
}

// appendVersion assigns the next version number and inserts, retrying on a
// numbering race. A non-nil then runs in the same transaction after the
// insert, so companion writes commit or roll back with the version.
func (s *VersionService) appendVersion(ctx context.Context, v domain.DocumentVersion, then func(tx store.Tx) error) (domain.DocumentVersion, error) {
	var lastErr error
	for attempt := 0; attempt < versionRetries; attempt++ {
		v.ID = idx.New().String()
		v.CreatedAt = time.Now().UTC()

		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			max, err := tx.Versions().MaxVersionNumber(ctx, v.DocumentID)
			if err != nil {
				return err
			}
			v.VersionNumber = max + 1
			if err := tx.Versions().CreateVersion(ctx, v); err != nil {
				return err
			}
			if then != nil {
				return then(tx)
			}
			return nil
		})
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return domain.DocumentVersion{}, err
		}
		lastErr = err
	}
	return domain.DocumentVersion{}, lastErr
}

func (s *VersionService) requireDocument(ctx context.Context, documentID string) (domain.Document, error) {
	doc, err := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Document{}, ErrDocumentNotFound
		}
		return domain.Document{}, err
	}
	return doc, nil
}

// countWords counts whitespace-separated words in the text content of an
// HTML fragment. Plain text passes through the tokenizer unchanged, so the
// same count works for both storage formats.
func countWords(content string) int64 {
	if strings.TrimSpace(content) == "" {
		return 0
	}

	var text strings.Builder
	tok := html.NewTokenizer(strings.NewReader(content))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return int64(len(strings.Fields(text.String())))
		case html.TextToken:
			text.Write(tok.Text())
			text.WriteByte(' ')
		}
	}
}
