package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"strconv"

	"github.com/dmitrijs2005/docusage/internal/common"
	"github.com/dmitrijs2005/docusage/internal/dbx"
	"github.com/dmitrijs2005/docusage/internal/filex"
	"github.com/dmitrijs2005/docusage/internal/logging"
	"github.com/dmitrijs2005/docusage/internal/server/models"
	"github.com/dmitrijs2005/docusage/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docusage/internal/server/storage"
	"github.com/google/uuid"
)

// Content types accepted for upload.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var allowedContentTypes = map[string]struct{}{
	ContentTypePDF:  {},
	ContentTypeText: {},
	ContentTypeDOCX: {},
}

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidFilename     = errors.New("invalid filename")
	ErrFileTooLarge        = errors.New("file too large")
)

// FileService stores documents for authenticated users. Metadata goes to
// the files repository and content to a storage.BlobStore under
// "<user id>/<sanitized filename>"; uploading the same name again replaces
// the previous version.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	maxSize     int64
	logger      logging.Logger
	newID       func() string
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, maxSize int64, logger logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		store:       store,
		maxSize:     maxSize,
		logger:      logger.With("module", "files"),
		newID:       uuid.NewString,
	}
}

// Upload validates and stores content for owner. The metadata row and the
// blob write share one transaction: if the store fails the row is rolled back.
func (s *FileService) Upload(ctx context.Context, owner *models.Identity, filename, contentType string, content []byte) (*models.File, error) {
	mediaType, err := normalizeContentType(contentType)
	if err != nil {
		return nil, err
	}

	name := filex.SanitizeName(filename)
	if name == "" {
		return nil, ErrInvalidFilename
	}

	size := int64(len(content))
	if size > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, size, s.maxSize)
	}

	file := &models.File{
		ID:          s.newID(),
		UserID:      owner.ID,
		Filename:    name,
		StorageKey:  StorageKey(owner.ID, name),
		ContentType: mediaType,
		Size:        size,
	}
	newID := file.ID

	var (
		saved  *models.File
		stored bool
	)
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		saved, err = s.repomanager.Files(tx).Save(ctx, file)
		if err != nil {
			return fmt.Errorf("save metadata: %w", err)
		}
		if err := s.store.Put(ctx, file.StorageKey, bytes.NewReader(content), size, mediaType); err != nil {
			return fmt.Errorf("store content: %w", err)
		}
		stored = true
		return nil
	})
	if err != nil {
		// commit failed after a first upload of this key: drop the orphan blob
		if stored && saved != nil && saved.ID == newID {
			if derr := s.store.Delete(ctx, file.StorageKey); derr != nil {
				s.logger.Error(ctx, "orphan blob cleanup failed", "key", file.StorageKey, "error", derr)
			}
		}
		s.logger.Error(ctx, "upload failed", "user_id", owner.ID, "error", err)
		return nil, fmt.Errorf("%w: upload: %w", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "file uploaded", "user_id", owner.ID, "file_id", saved.ID, "size", size)
	return saved, nil
}

// List returns the owner's files, newest first.
func (s *FileService) List(ctx context.Context, owner *models.Identity) ([]*models.File, error) {
	list, err := s.repomanager.Files(s.db).ListByUser(ctx, owner.ID)
	if err != nil {
		s.logger.Error(ctx, "list files failed", "user_id", owner.ID, "error", err)
		return nil, fmt.Errorf("%w: list files: %w", common.ErrorInternal, err)
	}
	return list, nil
}

// Download returns metadata and content of one of the owner's files.
// Files of other users are reported as common.ErrorNotFound.
func (s *FileService) Download(ctx context.Context, owner *models.Identity, id string) (*models.File, []byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, common.ErrorNotFound
	}

	file, err := s.repomanager.Files(s.db).GetByID(ctx, owner.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, err
		}
		s.logger.Error(ctx, "file lookup failed", "error", err)
		return nil, nil, fmt.Errorf("%w: lookup file: %w", common.ErrorInternal, err)
	}

	rc, err := s.store.Get(ctx, file.StorageKey)
	if err != nil {
		s.logger.Error(ctx, "blob read failed", "key", file.StorageKey, "error", err)
		return nil, nil, fmt.Errorf("%w: read content: %w", common.ErrorInternal, err)
	}
	defer rc.Close()

	// bounded by the recorded size, not the current upload limit
	content, err := io.ReadAll(io.LimitReader(rc, file.Size+1))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read content: %w", common.ErrorInternal, err)
	}
	if int64(len(content)) != file.Size {
		s.logger.Error(ctx, "blob size mismatch", "key", file.StorageKey, "want", file.Size, "got", len(content))
		return nil, nil, fmt.Errorf("%w: blob %s has %d bytes, metadata says %d", common.ErrorInternal, file.StorageKey, len(content), file.Size)
	}
	return file, content, nil
}

// StorageKey is the blob key of filename uploaded by userID.
func StorageKey(userID int64, filename string) string {
	return strconv.FormatInt(userID, 10) + "/" + filename
}

func normalizeContentType(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, contentType)
	}
	if _, ok := allowedContentTypes[mediaType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, mediaType)
	}
	return mediaType, nil
}
