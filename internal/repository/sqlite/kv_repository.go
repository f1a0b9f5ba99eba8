package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/repository"
)

type kvRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewKVRepository creates a KVRepository backed by the kv_store table.
func NewKVRepository(db *sql.DB) repository.KVRepository {
	return &kvRepository{db: db, now: time.Now}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("getting key: %s", key)

	query, args, err := sqlBuilder.Select("value").From("kv_store").
		Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, false, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("key not found: %s", key)
			return nil, false, nil
		}
		log.Error("failed to get key %s: %v", key, err)
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("putting key: %s (%d bytes)", key, len(value))

	query, args, err := sqlBuilder.Insert("kv_store").
		Columns("key", "value", "updated_at").
		Values(key, string(value), r.now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		log.Error("failed to build upsert: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to put key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting key: %s", key)

	query, args, err := sqlBuilder.Delete("kv_store").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		log.Error("failed to build delete: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("listing keys with prefix: %q", prefix)

	query, args, err := sqlBuilder.Select("key").From("kv_store").
		Where(hasPrefix("key", prefix)).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list keys: %v", err)
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			log.Error("failed to scan key row: %v", err)
			return nil, err
		}
		keys = append(keys, k)
	}
	log.Debug("found %d keys", len(keys))
	return keys, rows.Err()
}

func (r *kvRepository) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting keys with prefix: %q", prefix)

	query, args, err := sqlBuilder.Delete("kv_store").Where(hasPrefix("key", prefix)).ToSql()
	if err != nil {
		log.Error("failed to build delete: %v", err)
		return 0, err
	}

	var removed int64
	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Error("failed to delete prefix %q: %v", prefix, err)
		return 0, err
	}
	log.Info("deleted %d keys with prefix %q", removed, prefix)
	return int(removed), nil
}
