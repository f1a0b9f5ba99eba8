package sqlite

import (
	"context"
	"database/sql"
	"unicode/utf8"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/dsamastery/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// hasPrefix matches keys by literal prefix, so LIKE wildcards in prefix have
// no special meaning.
func hasPrefix(column, prefix string) squirrel.Sqlizer {
	return squirrel.Expr("substr("+column+", 1, ?) = ?", utf8.RuneCountInString(prefix), prefix)
}

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}
