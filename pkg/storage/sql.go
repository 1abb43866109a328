package storage

import (
	"context"
	"database/sql"
)

type Dialect int

const (
	MySQL Dialect = iota
	SQLite
)

var createSchema = map[Dialect]string{
	MySQL: "CREATE TABLE IF NOT EXISTS kv_store (" +
		"`k` VARCHAR(64) NOT NULL," +
		"`v` LONGTEXT NOT NULL," +
		"PRIMARY KEY (`k`)" +
		") ENGINE=INNODB DEFAULT CHARSET=utf8mb4;",
	SQLite: "CREATE TABLE IF NOT EXISTS kv_store (" +
		"`k` TEXT NOT NULL PRIMARY KEY," +
		"`v` TEXT NOT NULL" +
		");",
}

var upsertQuery = map[Dialect]string{
	MySQL:  "INSERT INTO kv_store (`k`, `v`) VALUES (?, ?) ON DUPLICATE KEY UPDATE `v` = VALUES(`v`)",
	SQLite: "INSERT INTO kv_store (`k`, `v`) VALUES (?, ?) ON CONFLICT(`k`) DO UPDATE SET `v` = excluded.`v`",
}

// SQLBackend keeps every key as one row of the kv_store table.
type SQLBackend struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLBackend(db *sql.DB, dialect Dialect) *SQLBackend {
	return &SQLBackend{db: db, dialect: dialect}
}

// Init creates the kv_store table if it does not exist yet.
func (b *SQLBackend) Init(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, createSchema[b.dialect])
	return err
}

func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	query := "SELECT `v` FROM kv_store WHERE `k` = ?"
	r := b.db.QueryRowContext(ctx, query, key)

	var v string
	err := r.Scan(&v)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return []byte(v), nil
}

func (b *SQLBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.db.ExecContext(ctx, upsertQuery[b.dialect], key, string(value))
	return err
}

func (b *SQLBackend) Delete(ctx context.Context, key string) error {
	_, err := b.db.ExecContext(ctx, "DELETE FROM kv_store WHERE `k` = ?", key)
	return err
}
