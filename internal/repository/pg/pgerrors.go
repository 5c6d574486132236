package pg

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type ErrorClassification int

const (
	NonRetriable ErrorClassification = iota
	Retriable

	ErrIsExistCode = pgerrcode.UniqueViolation
)

type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetriable
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPgCode(string(pqErr.Code))
	}

	// pgx через stdlib возвращает свои ошибки
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgCode(pgErr.Code)
	}

	// По умолчанию считаем ошибку неповторяемой
	return NonRetriable
}

func classifyPgCode(code string) ErrorClassification {
	// Коды ошибок PostgreSQL: https://www.postgresql.org/docs/current/errcodes-appendix.html

	switch {
	// Класс 08 - Ошибки соединения
	case pgerrcode.IsConnectionException(code):
		return Retriable

	// Класс 40 - Откат транзакции
	case pgerrcode.IsTransactionRollback(code):
		return Retriable

	// Класс 57 - Ошибка оператора
	case code == pgerrcode.CannotConnectNow:
		return Retriable
	}

	// Классы 22, 23, 42 и всё остальное повторять бессмысленно
	return NonRetriable
}
