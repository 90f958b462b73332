package ledger

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"BasketTrader/internal/model"
)

// SQLiteLedger persists trades to a SQLite database.
type SQLiteLedger struct {
	db *sql.DB
	mu sync.Mutex
}

const schema = `CREATE TABLE IF NOT EXISTS trades (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	date         TEXT,
	contract     TEXT,
	side         TEXT,
	quantity     REAL,
	entry_price  REAL,
	stop_loss    REAL,
	take_profit  REAL,
	exit_price   REAL,
	profit_loss  REAL,
	volume       REAL
)`

// filterColumns lists the columns a Query predicate may reference. The
// filter value is always bound as a parameter; this whitelist only guards
// the column name, which cannot be parameterized.
var filterColumns = map[string]bool{
	"id": true, "date": true, "contract": true, "side": true,
	"quantity": true, "entry_price": true, "stop_loss": true,
	"take_profit": true, "exit_price": true, "profit_loss": true,
	"volume": true,
}

// NewSQLiteLedger opens (or creates) the database and runs the migration.
func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so stats queries read a consistent snapshot while the
	// engine appends.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite ledger opened: %s", dbPath)
	return &SQLiteLedger{db: db}, nil
}

func (l *SQLiteLedger) Append(rec model.TradeRecord) (model.TradeRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.db.Exec(`INSERT INTO trades
		(date, contract, side, quantity, entry_price, stop_loss, take_profit, exit_price, profit_loss, volume)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		rec.Date, rec.Contract, string(rec.Side), rec.Quantity,
		rec.EntryPrice, rec.StopLoss, rec.TakeProfit,
		rec.ExitPrice, rec.ProfitLoss, rec.Volume,
	)
	if err != nil {
		return rec, fmt.Errorf("insert trade: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (l *SQLiteLedger) Query(filterField, filterValue string) ([]model.TradeRecord, error) {
	query := `SELECT id, date, contract, side, quantity, entry_price, stop_loss, take_profit, exit_price, profit_loss, volume FROM trades`
	var args []any
	if filterField != "" {
		if !filterColumns[filterField] {
			return nil, fmt.Errorf("unknown filter column %q", filterField)
		}
		query += fmt.Sprintf(" WHERE %s = ?", filterField)
		args = append(args, filterValue)
	}
	query += " ORDER BY id ASC"

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var out []model.TradeRecord
	for rows.Next() {
		var rec model.TradeRecord
		var side string
		if err := rows.Scan(
			&rec.ID, &rec.Date, &rec.Contract, &side, &rec.Quantity,
			&rec.EntryPrice, &rec.StopLoss, &rec.TakeProfit,
			&rec.ExitPrice, &rec.ProfitLoss, &rec.Volume,
		); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		rec.Side = model.Side(side)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *SQLiteLedger) Close() error {
	log.Println("[INFO] closing sqlite ledger")
	return l.db.Close()
}

var _ Ledger = (*SQLiteLedger)(nil)
