// Package sqlite persists pools, coins, blocks and reserve snapshots.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/fleshka4/gofi/internal/service/dto"
	"github.com/fleshka4/gofi/internal/uniswapv2"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Reserves are decimal TEXT: 112-bit values do not fit an SQLite INTEGER.
const schema = `
CREATE TABLE IF NOT EXISTS coins (
	contract_address TEXT PRIMARY KEY,
	symbol           TEXT NOT NULL,
	decimals         INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS pools (
	contract_address TEXT PRIMARY KEY,
	token0           TEXT NOT NULL,
	token1           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS pools_tokens ON pools (token0, token1);
CREATE TABLE IF NOT EXISTS blocks (
	number    INTEGER PRIMARY KEY,
	timestamp INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS reserves (
	contract_address TEXT NOT NULL,
	block_number     INTEGER NOT NULL,
	x                TEXT NOT NULL,
	y                TEXT NOT NULL,
	PRIMARY KEY (contract_address, block_number)
);
`

const pairsWithQuery = `
WITH latest AS (
	SELECT contract_address, block_number, x, y,
	       ROW_NUMBER() OVER (PARTITION BY contract_address ORDER BY block_number DESC) AS rn
	FROM reserves
)
SELECT p1.contract_address, p2.contract_address,
       c0.contract_address, c0.symbol, c0.decimals,
       c1.contract_address, c1.symbol, c1.decimals,
       l1.block_number, COALESCE(b1.timestamp, 0), l1.x, l1.y,
       l2.block_number, COALESCE(b2.timestamp, 0), l2.x, l2.y
FROM pools AS p1
JOIN pools AS p2 ON p1.token0 = p2.token0 AND p1.token1 = p2.token1
                AND p1.contract_address < p2.contract_address
JOIN latest AS l1 ON l1.contract_address = p1.contract_address AND l1.rn = 1
JOIN latest AS l2 ON l2.contract_address = p2.contract_address AND l2.rn = 1
JOIN coins AS c0 ON c0.contract_address = p1.token0
JOIN coins AS c1 ON c1.contract_address = p1.token1
LEFT JOIN blocks AS b1 ON b1.number = l1.block_number
LEFT JOIN blocks AS b2 ON b2.number = l2.block_number
WHERE p1.token0 = ?
ORDER BY p1.contract_address, p2.contract_address
`

var countQueries = map[string]string{
	"coins":    "SELECT COUNT(*) FROM coins",
	"pools":    "SELECT COUNT(*) FROM pools",
	"blocks":   "SELECT COUNT(*) FROM blocks",
	"reserves": "SELECT COUNT(*) FROM reserves",
}

// Store is an SQLite-backed pool registry.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "sql.Open")
	}
	// A ":memory:" database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "db.PingContext")
	}

	s := &Store{db: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "s.db.ExecContext")
	}
	return nil
}

func key(addr common.Address) string {
	return hex.EncodeToString(addr.Bytes())
}

// UpsertCoin stores or replaces coin metadata.
func (s *Store) UpsertCoin(ctx context.Context, c dto.Coin) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO coins (contract_address, symbol, decimals) VALUES (?, ?, ?)
		 ON CONFLICT (contract_address) DO UPDATE SET symbol = excluded.symbol, decimals = excluded.decimals`,
		key(c.Address), c.Symbol, c.Decimals)
	return errors.Wrap(err, "upsert coin")
}

// UpsertPool stores a pair and its tokens.
func (s *Store) UpsertPool(ctx context.Context, pool, token0, token1 common.Address) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pools (contract_address, token0, token1) VALUES (?, ?, ?)
		 ON CONFLICT (contract_address) DO UPDATE SET token0 = excluded.token0, token1 = excluded.token1`,
		key(pool), key(token0), key(token1))
	return errors.Wrap(err, "upsert pool")
}

// InsertBlock records a block timestamp. Re-inserting a block is a no-op.
func (s *Store) InsertBlock(ctx context.Context, number, timestamp uint64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blocks (number, timestamp) VALUES (?, ?) ON CONFLICT (number) DO NOTHING`,
		int64(number), int64(timestamp))
	return errors.Wrap(err, "insert block")
}

// InsertReserve records a pool's reserves at a block, replacing any earlier
// snapshot for the same block.
func (s *Store) InsertReserve(ctx context.Context, pool common.Address, block uint64, r uniswapv2.Reserves) error {
	if r.X == nil || r.Y == nil {
		return errors.New("insert reserve: nil reserve")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reserves (contract_address, block_number, x, y) VALUES (?, ?, ?, ?)
		 ON CONFLICT (contract_address, block_number) DO UPDATE SET x = excluded.x, y = excluded.y`,
		key(pool), int64(block), r.X.Dec(), r.Y.Dec())
	return errors.Wrap(err, "insert reserve")
}

// Count returns the number of rows in one of the known tables.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	q, ok := countQueries[table]
	if !ok {
		return 0, errors.Errorf("unknown table %q", table)
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count")
	}
	return n, nil
}

// Coin returns coin metadata by address.
func (s *Store) Coin(ctx context.Context, addr common.Address) (dto.Coin, error) {
	var (
		raw string
		c   dto.Coin
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT contract_address, symbol, decimals FROM coins WHERE contract_address = ?`, key(addr)).
		Scan(&raw, &c.Symbol, &c.Decimals)
	if errors.Is(err, sql.ErrNoRows) {
		return dto.Coin{}, errors.Wrapf(ErrNotFound, "coin %s", addr.Hex())
	}
	if err != nil {
		return dto.Coin{}, errors.Wrap(err, "select coin")
	}
	c.Address = common.HexToAddress(raw)
	return c, nil
}

// PairsWith returns every pair of pools sharing token0 = base and the same
// token1, each pool carrying its latest reserve snapshot. Pairs are not
// oriented by price; Pool0 is the pool with the lower address.
func (s *Store) PairsWith(ctx context.Context, base common.Address) ([]dto.Pair, error) {
	rows, err := s.db.QueryContext(ctx, pairsWithQuery, key(base))
	if err != nil {
		return nil, errors.Wrap(err, "query pairs")
	}
	defer rows.Close()

	var pairs []dto.Pair
	for rows.Next() {
		var (
			p1, p2, a0, a1 string
			x1, y1, x2, y2 string
			c0, c1         dto.Coin
			s1, s2         dto.PoolSnapshot
		)
		if err := rows.Scan(
			&p1, &p2,
			&a0, &c0.Symbol, &c0.Decimals,
			&a1, &c1.Symbol, &c1.Decimals,
			&s1.BlockNumber, &s1.BlockTimestamp, &x1, &y1,
			&s2.BlockNumber, &s2.BlockTimestamp, &x2, &y2,
		); err != nil {
			return nil, errors.Wrap(err, "scan pair")
		}

		c0.Address = common.HexToAddress(a0)
		c1.Address = common.HexToAddress(a1)
		s1.Pool = dto.Pool{Address: common.HexToAddress(p1), Coin0: c0, Coin1: c1}
		s2.Pool = dto.Pool{Address: common.HexToAddress(p2), Coin0: c0, Coin1: c1}

		if s1.Reserves, err = parseReserves(x1, y1); err != nil {
			return nil, errors.Wrapf(err, "pool %s", p1)
		}
		if s2.Reserves, err = parseReserves(x2, y2); err != nil {
			return nil, errors.Wrapf(err, "pool %s", p2)
		}

		pairs = append(pairs, dto.Pair{Pool0: s1, Pool1: s2})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows.Err")
	}
	return pairs, nil
}

func parseReserves(x, y string) (uniswapv2.Reserves, error) {
	rx, err := uint256.FromDecimal(x)
	if err != nil {
		return uniswapv2.Reserves{}, errors.Wrap(err, "parse reserve x")
	}
	ry, err := uint256.FromDecimal(y)
	if err != nil {
		return uniswapv2.Reserves{}, errors.Wrap(err, "parse reserve y")
	}
	return uniswapv2.Reserves{X: rx, Y: ry}, nil
}
