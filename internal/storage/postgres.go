package storage

import (
	"database/sql"
	"time"
)

// PostgresStore はPostgreSQLを使用したStore実装。
// スキーマは internal/database の埋め込みマイグレーションで作成する。
type PostgresStore struct {
	db *sql.DB

	// テストから時刻を固定するためのフック。
	now func() time.Time
}

// NewPostgresStore はPostgresStoreを生成する。
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// compile-time interface check
var _ Store = (*PostgresStore)(nil)
