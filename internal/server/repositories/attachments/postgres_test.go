package attachments

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/elizarovs/postkeeper/internal/common"
	"github.com/elizarovs/postkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreateOrReplace_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+attachments\s*\(post_id,\s*author_id,\s*storage_key,\s*content_type,\s*upload_status\).*ON\s+CONFLICT\s*\(post_id\)`

	mock.ExpectExec(q).
		WithArgs("p-1", "u-1", "posts/2026/8/29/key", "image/png", models.UploadStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := &models.Attachment{
		PostID:       "p-1",
		AuthorID:     "u-1",
		StorageKey:   "posts/2026/8/29/key",
		ContentType:  "image/png",
		UploadStatus: models.UploadStatusPending,
	}
	if err := repo.CreateOrReplace(context.Background(), a); err != nil {
		t.Fatalf("CreateOrReplace error: %v", err)
	}
}

func TestCreateOrReplace_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+attachments`).
		WillReturnError(errors.New("db down"))

	err := repo.CreateOrReplace(context.Background(), &models.Attachment{PostID: "p-1"})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestGetByPostID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"post_id", "author_id", "storage_key", "content_type", "upload_status", "created_at"}).
		AddRow("p-1", "u-1", "key", "image/png", models.UploadStatusCompleted, time.Now())
	mock.ExpectQuery(`SELECT .* FROM\s+attachments\s+WHERE\s+post_id`).
		WithArgs("p-1").
		WillReturnRows(rows)

	got, err := repo.GetByPostID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetByPostID error: %v", err)
	}
	if got.StorageKey != "key" || got.UploadStatus != models.UploadStatusCompleted {
		t.Fatalf("unexpected attachment: %+v", got)
	}
}

func TestGetByPostID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM\s+attachments`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByPostID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestMarkUploaded_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+attachments\s+SET\s+upload_status\s*=\s*'completed'\s+WHERE\s+post_id`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkUploaded(context.Background(), "p-1"); err != nil {
		t.Fatalf("MarkUploaded error: %v", err)
	}
}

func TestMarkUploaded_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+attachments`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkUploaded(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
