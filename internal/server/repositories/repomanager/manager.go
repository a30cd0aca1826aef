package repomanager

import (
	"context"
	"database/sql"

	"github.com/elizarovs/postkeeper/internal/dbx"
	"github.com/elizarovs/postkeeper/internal/server/repositories/attachments"
	"github.com/elizarovs/postkeeper/internal/server/repositories/posts"
	"github.com/elizarovs/postkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
