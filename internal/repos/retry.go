package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// Table writes go through a fixed 3-attempt loop. SQLite under a shared file
// can return transient busy errors; three tries with a short pause clears
// those, anything persistent surfaces after the last attempt.
const execAttempts = 3

const retryPause = 50 * time.Millisecond

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// ExecRetry runs the statement up to execAttempts times, returning the last
// error if all attempts fail.
func ExecRetry(e execer, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	var err error
	for i := 0; i < execAttempts; i++ {
		res, err = e.Exec(query, args...)
		if err == nil {
			return res, nil
		}
		if i < execAttempts-1 {
			time.Sleep(retryPause)
		}
	}
	return res, err
}

var _ execer = (*sqlx.DB)(nil)
var _ execer = (*sqlx.Tx)(nil)
