package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/elizarovs/postkeeper/internal/common"
	sc "github.com/elizarovs/postkeeper/internal/server/config"
	"github.com/elizarovs/postkeeper/internal/server/models"
	"github.com/elizarovs/postkeeper/internal/server/repositories/posts"
	"github.com/elizarovs/postkeeper/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// presignExpiry bounds how long an issued upload/download URL stays valid.
const presignExpiry = 15 * time.Minute

// PostService implements post CRUD scoped to the authoring account, plus the
// attachment lifecycle backed by presigned S3 URLs (request upload, confirm
// upload, fetch download link).
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewPostService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *PostService {
	return &PostService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// GetRandomStorageKey produces a date-partitioned object key for a new upload.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("posts/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Create stores a new post owned by authorID.
func (s *PostService) Create(ctx context.Context, authorID, title, description string) (*models.Post, error) {
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", common.ErrorValidation)
	}

	post := &models.Post{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		AuthorID:    authorID,
	}

	p, err := s.repomanager.Posts(s.db).Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return p, nil
}

// ListByAuthor returns the author's posts, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	list, err := s.repomanager.Posts(s.db).GetByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return list, nil
}

// Update applies a partial update to a post the caller owns. A post that does
// not exist and a post owned by someone else are both reported as not found.
func (s *PostService) Update(ctx context.Context, id, authorID string, params posts.UpdateParams) (*models.Post, error) {
	if params.Title == nil && params.Description == nil {
		return nil, fmt.Errorf("%w: no fields to update", common.ErrorValidation)
	}

	p, err := s.repomanager.Posts(s.db).Update(ctx, id, authorID, params)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	return p, nil
}

// Delete removes a post the caller owns. The boolean reports whether a row
// was actually deleted.
func (s *PostService) Delete(ctx context.Context, id, authorID string) (bool, error) {
	deleted, err := s.repomanager.Posts(s.db).Delete(ctx, id, authorID)
	if err != nil {
		return false, fmt.Errorf("error deleting post: %w", err)
	}
	return deleted, nil
}

func (s *PostService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *PostService) getPresignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *PostService) getPresignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// RequestAttachmentUpload reserves an attachment slot for the post and returns
// a presigned PUT URL the client uploads to. The pending row replaces any
// previous attachment on the same post.
func (s *PostService) RequestAttachmentUpload(ctx context.Context, postID, authorID, contentType string) (*models.Attachment, string, error) {
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("error resolving post: %w", err)
	}
	// ownership mismatch is indistinguishable from a missing post
	if post.AuthorID != authorID {
		return nil, "", common.ErrorNotFound
	}

	key := GetRandomStorageKey()

	url, err := s.getPresignedPutURL(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("error presigning upload: %w", err)
	}

	attachment := &models.Attachment{
		PostID:       postID,
		AuthorID:     authorID,
		StorageKey:   key,
		ContentType:  contentType,
		UploadStatus: models.UploadStatusPending,
	}

	if err := s.repomanager.Attachments(s.db).CreateOrReplace(ctx, attachment); err != nil {
		return nil, "", fmt.Errorf("error storing attachment: %w", err)
	}

	return attachment, url, nil
}

// CompleteAttachmentUpload marks the post's attachment as uploaded once the
// client has finished the presigned PUT.
func (s *PostService) CompleteAttachmentUpload(ctx context.Context, postID, authorID string) error {
	attachment, err := s.repomanager.Attachments(s.db).GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error resolving attachment: %w", err)
	}
	if attachment.AuthorID != authorID {
		return common.ErrorNotFound
	}

	if err := s.repomanager.Attachments(s.db).MarkUploaded(ctx, postID); err != nil {
		return fmt.Errorf("error updating attachment: %w", err)
	}
	return nil
}

// AttachmentDownloadURL returns a presigned GET URL for a completed upload.
// Pending attachments are reported as not found.
func (s *PostService) AttachmentDownloadURL(ctx context.Context, postID, authorID string) (string, error) {
	attachment, err := s.repomanager.Attachments(s.db).GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error resolving attachment: %w", err)
	}
	if attachment.AuthorID != authorID || attachment.UploadStatus != models.UploadStatusCompleted {
		return "", common.ErrorNotFound
	}

	url, err := s.getPresignedGetURL(ctx, attachment.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}
	return url, nil
}
