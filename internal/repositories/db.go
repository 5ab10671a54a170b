package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// DBTX — общий знаменатель *sql.DB и *sql.Tx: методы, которые нужны репозиториям.
// Позволяет запускать одни и те же запросы внутри и вне транзакции.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrDuplicate — нарушение уникального индекса (login или email уже заняты).
// Уникальные констрейнты в БД — источник истины; проверки в сервисах — только
// быстрый путь для UX.
var ErrDuplicate = errors.New("duplicate identity")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
