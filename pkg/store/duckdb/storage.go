package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportRecordsSchema = `
	CREATE TABLE IF NOT EXISTS report_records (
		id VARCHAR NOT NULL PRIMARY KEY,
		slug VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		question VARCHAR NOT NULL,
		sql_text VARCHAR NOT NULL,
		path VARCHAR NOT NULL,
		format VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	ReportRecordsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

type txKey struct{}

// WithTransaction binds a transaction to the context so that stores
// participate in it instead of writing through the shared connection.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
