package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"items-crud/backend/internal/config"
	"items-crud/backend/internal/items"
)

const (
	mysqlSchema = `CREATE TABLE IF NOT EXISTS items (
  id INT AUTO_INCREMENT PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  price DECIMAL(10,2) NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB`

	mysqlList   = `SELECT id, name, price, created_at FROM items ORDER BY id DESC`
	mysqlRecent = mysqlList + ` LIMIT ?`
	mysqlGet    = `SELECT id, name, price, created_at FROM items WHERE id=?`
	mysqlInsert = `INSERT INTO items (name, price) VALUES (?, ?)`
	mysqlUpdate = `UPDATE items SET name=?, price=? WHERE id=?`
	mysqlDelete = `DELETE FROM items WHERE id=?`
)

// mysqlConnMaxLifetime keeps pooled connections under the server's
// wait_timeout.
const mysqlConnMaxLifetime = 3 * time.Minute

func mysqlConfig(cfg config.Config) *mysql.Config {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = cfg.DBAddr()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.DBName = cfg.DBName
	mc.ParseTime = true
	// an UPDATE that rewrites identical values still counts as a match
	mc.ClientFoundRows = true
	mc.Loc = time.UTC
	return mc
}

// openMySQL builds the bounded pool without dialing.
func openMySQL(cfg config.Config) (*sql.DB, error) {
	connector, err := mysql.NewConnector(mysqlConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("mysql config: %w", err)
	}
	conn := sql.OpenDB(connector)
	conn.SetMaxOpenConns(config.PoolSize)
	conn.SetMaxIdleConns(config.PoolSize)
	conn.SetConnMaxLifetime(mysqlConnMaxLifetime)
	return conn, nil
}

func connectMySQL(ctx context.Context, cfg config.Config) (items.Store, error) {
	conn, err := openMySQL(cfg)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("mysql ping %s: %w", cfg.DBAddr(), err)
	}
	s := NewMySQLStore(conn)
	if err := s.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// MySQLStore is the items.Store backed by database/sql and go-sql-driver.
type MySQLStore struct {
	DB *sql.DB
}

var _ items.Store = (*MySQLStore)(nil)

func NewMySQLStore(conn *sql.DB) *MySQLStore {
	return &MySQLStore{DB: conn}
}

func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, mysqlSchema); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

func (s *MySQLStore) List(ctx context.Context, limit int) ([]items.Item, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.DB.QueryContext(ctx, mysqlRecent, limit)
	} else {
		rows, err = s.DB.QueryContext(ctx, mysqlList)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []items.Item{}
	for rows.Next() {
		var it items.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *MySQLStore) Get(ctx context.Context, id int64) (items.Item, error) {
	var it items.Item
	err := s.DB.QueryRowContext(ctx, mysqlGet, id).Scan(&it.ID, &it.Name, &it.Price, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return items.Item{}, items.ErrNotFound
	}
	return it, err
}

func (s *MySQLStore) Create(ctx context.Context, name string, price decimal.Decimal) (int64, error) {
	res, err := s.DB.ExecContext(ctx, mysqlInsert, name, price)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *MySQLStore) Update(ctx context.Context, id int64, name string, price decimal.Decimal) error {
	res, err := s.DB.ExecContext(ctx, mysqlUpdate, name, price, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (s *MySQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, mysqlDelete, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (s *MySQLStore) Close() { _ = s.DB.Close() }

// affected maps a zero affected-row count to items.ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return items.ErrNotFound
	}
	return nil
}
