package store

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"github.com/ryanisaacg/budget/internal/model"
)

// SQLiteStore persists the tree to a SQLite database, one row per
// account. Rows carry an integer id and a parent id so that duplicate
// account names survive a round trip; sibling order is kept in the
// position column.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so reporting tools can read while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id            INTEGER PRIMARY KEY,
			parent_id     INTEGER NOT NULL,
			position      INTEGER NOT NULL,
			name          TEXT NOT NULL,
			is_leaf       INTEGER NOT NULL,
			balance       REAL NOT NULL DEFAULT 0,
			max           REAL NOT NULL DEFAULT 0,
			inflow_kind   TEXT NOT NULL DEFAULT '',
			inflow_amount REAL NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_parent ON accounts(parent_id, position)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Load rebuilds the tree from the accounts table. Returns a nil root
// when the table is empty.
func (s *SQLiteStore) Load() (*model.Account, error) {
	rows, err := s.db.Query(`SELECT id, parent_id, name, is_leaf, balance, max, inflow_kind, inflow_amount
		FROM accounts ORDER BY parent_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	type record struct {
		id, parentID int64
		inflow       model.Inflow
		acct         *model.Account
	}
	var records []record
	accounts := make(map[int64]*model.Account)

	for rows.Next() {
		var rec record
		var isLeaf int
		var balance, max float64
		rec.acct = &model.Account{}
		if err := rows.Scan(&rec.id, &rec.parentID, &rec.acct.Name, &isLeaf,
			&balance, &max, &rec.inflow.Kind, &rec.inflow.Amount); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		if isLeaf != 0 {
			rec.acct.Leaf = &model.LeafState{Balance: balance, Max: max}
		}
		accounts[rec.id] = rec.acct
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var root *model.Account
	for _, rec := range records {
		if rec.parentID == 0 {
			root = rec.acct
			continue
		}
		parent, ok := accounts[rec.parentID]
		if !ok {
			return nil, fmt.Errorf("account %q references missing parent %d", rec.acct.Name, rec.parentID)
		}
		parent.Children = append(parent.Children, model.BranchEntry{Account: rec.acct, Inflow: rec.inflow})
	}
	if root == nil {
		return nil, fmt.Errorf("accounts table has no root row")
	}
	return root, nil
}

// Save replaces the accounts table with the current tree.
func (s *SQLiteStore) Save(root *model.Account) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}

	nextID := int64(1)
	var insert func(acct *model.Account, parentID int64, position int, inflow model.Inflow) error
	insert = func(acct *model.Account, parentID int64, position int, inflow model.Inflow) error {
		id := nextID
		nextID++
		isLeaf := 0
		var balance, max float64
		if acct.Leaf != nil {
			isLeaf = 1
			balance = acct.Leaf.Balance
			max = acct.Leaf.Max
		}
		if _, err := tx.Exec(`INSERT INTO accounts
			(id, parent_id, position, name, is_leaf, balance, max, inflow_kind, inflow_amount)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			id, parentID, position, acct.Name, isLeaf, balance, max, inflow.Kind, inflow.Amount); err != nil {
			return fmt.Errorf("insert account %q: %w", acct.Name, err)
		}
		for i := range acct.Children {
			entry := &acct.Children[i]
			if err := insert(entry.Account, id, i, entry.Inflow); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(root, 0, 0, model.Inflow{}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
