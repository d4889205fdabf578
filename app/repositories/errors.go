package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned when a write violates a unique constraint,
// so handlers can turn it into a validation-style message instead of
// surfacing a raw storage error.
var ErrDuplicate = errors.New("duplicate entry")

const mysqlDuplicateEntry = 1062

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	return err
}
