package database

import (
	"errors"
	"fmt"

	"postsapi/internal/core/post"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const invalidPost = "invalid post"

// MySQL server error numbers that mean the row itself was rejected.
var mysqlInvalidNumbers = map[uint16]struct{}{
	1048: {}, // column cannot be null
	1062: {}, // duplicate entry
	1364: {}, // field has no default value
	1406: {}, // data too long
	1451: {}, // foreign key parent row
	1452: {}, // foreign key child row
	3819: {}, // check constraint violated
}

// sqliteConstraint is the primary SQLITE_CONSTRAINT result code.
const sqliteConstraint = 19

// sqliteError matches the driver error of the pure Go SQLite drivers.
type sqliteError interface {
	error
	Code() int
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// classify maps a store error onto the closed RepoError taxonomy. Anything
// that is not a rejected row is treated as a failed connection.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if msg, ok := invalidMessage(err); ok {
		return post.Invalid(msg, err)
	}
	return post.ConnectionFailed(err)
}

func invalidMessage(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 22 data exception, class 23 integrity constraint violation
		if len(pgErr.Code) < 2 || (pgErr.Code[:2] != "22" && pgErr.Code[:2] != "23") {
			return "", false
		}
		switch {
		case pgErr.ColumnName != "":
			return fmt.Sprintf("%s: bad value for %s", invalidPost, pgErr.ColumnName), true
		case pgErr.ConstraintName != "":
			return fmt.Sprintf("%s: violates %s", invalidPost, pgErr.ConstraintName), true
		default:
			return invalidPost, true
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if _, ok := mysqlInvalidNumbers[myErr.Number]; ok {
			return fmt.Sprintf("%s: %s", invalidPost, myErr.Message), true
		}
		return "", false
	}

	var liteErr sqliteError
	if errors.As(err, &liteErr) {
		if liteErr.Code()&0xff == sqliteConstraint {
			return fmt.Sprintf("%s: %s", invalidPost, liteErr.Error()), true
		}
		return "", false
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Sprintf("%s: %s", invalidPost, err.Error()), true
	}
	return "", false
}
