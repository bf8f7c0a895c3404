package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"items-crud/backend/internal/config"
	"items-crud/backend/internal/items"
)

const (
	pgSchema = `create table if not exists items (
  id serial primary key,
  name varchar(255) not null,
  price numeric(10,2) not null,
  created_at timestamptz not null default now()
)`

	pgList   = `select id, name, price::text, created_at from items order by id desc`
	pgRecent = pgList + ` limit $1`
	pgGet    = `select id, name, price::text, created_at from items where id=$1`
	pgInsert = `insert into items(name, price) values($1,$2) returning id`
	pgUpdate = `update items set name=$1, price=$2 where id=$3`
	pgDelete = `delete from items where id=$1`
)

// pgxQuerier is the subset of *pgxpool.Pool the store needs.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

func pgPoolConfig(cfg config.Config) (*pgxpool.Config, error) {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:   cfg.DBAddr(),
		Path:   "/" + cfg.DBName,
	}
	pcfg, err := pgxpool.ParseConfig(u.String())
	if err != nil {
		return nil, fmt.Errorf("postgres config: %w", err)
	}
	pcfg.MaxConns = config.PoolSize
	return pcfg, nil
}

func connectPostgres(ctx context.Context, cfg config.Config) (items.Store, error) {
	pcfg, err := pgPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping %s: %w", cfg.DBAddr(), err)
	}
	s := NewPostgresStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// PostgresStore is the items.Store backed by a pgx pool.
type PostgresStore struct {
	DB pgxQuerier
}

var _ items.Store = (*PostgresStore)(nil)

func NewPostgresStore(db pgxQuerier) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]items.Item, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.DB.Query(ctx, pgRecent, limit)
	} else {
		rows, err = s.DB.Query(ctx, pgList)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []items.Item{}
	for rows.Next() {
		it, err := scanPgItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (items.Item, error) {
	it, err := scanPgItem(s.DB.QueryRow(ctx, pgGet, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return items.Item{}, items.ErrNotFound
	}
	return it, err
}

func (s *PostgresStore) Create(ctx context.Context, name string, price decimal.Decimal) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, pgInsert, name, price.String()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PostgresStore) Update(ctx context.Context, id int64, name string, price decimal.Decimal) error {
	tag, err := s.DB.Exec(ctx, pgUpdate, name, price.String(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return items.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, pgDelete, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return items.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() { s.DB.Close() }

// scanPgItem reads one row. Prices cross the wire as text in both
// directions so the pool needs no numeric codec registration.
func scanPgItem(row pgx.Row) (items.Item, error) {
	var (
		it    items.Item
		price string
	)
	if err := row.Scan(&it.ID, &it.Name, &price, &it.CreatedAt); err != nil {
		return items.Item{}, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return items.Item{}, fmt.Errorf("item %d price %q: %w", it.ID, price, err)
	}
	it.Price = items.NewPrice(d)
	return it, nil
}
