package ticker

// TableName is the table holding the latest synced tickers.
const TableName = "tickers"

const columns = `
	id BIGSERIAL PRIMARY KEY,
	base_unit VARCHAR(255),
	quote_unit VARCHAR(255),
	low DOUBLE PRECISION,
	high DOUBLE PRECISION,
	last DOUBLE PRECISION,
	open DOUBLE PRECISION,
	volume DOUBLE PRECISION,
	sell DOUBLE PRECISION,
	buy DOUBLE PRECISION,
	at BIGINT,
	name VARCHAR(255),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
`

const (
	dropTableQuery              = `DROP TABLE IF EXISTS tickers`
	createTableQuery            = `CREATE TABLE tickers (` + columns + `)`
	createTableIfNotExistsQuery = `CREATE TABLE IF NOT EXISTS tickers (` + columns + `)`

	insertQuery = `INSERT INTO tickers (base_unit, quote_unit, low, high, last, open, volume, sell, buy, at, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	listQuery = `SELECT id, base_unit, quote_unit, low, high, last, open, volume, sell, buy, at, name, created_at, updated_at FROM tickers ORDER BY id ASC`
)
