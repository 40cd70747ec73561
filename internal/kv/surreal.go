package kv

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/contrib/rews"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/pkg/logger"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/raphaelgruber/wellkeep/internal/metrics"
)

func init() {
	// Force HTTP/1.1 for WSS connections to prevent HTTP/2 ALPN negotiation.
	// WebSocket upgrade requires HTTP/1.1 semantics which fail under HTTP/2.
	gorillaws.DefaultDialer.TLSClientConfig = &tls.Config{
		NextProtos: []string{"http/1.1"},
	}
}

// SurrealConfig holds SurrealDB connection configuration.
type SurrealConfig struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
	AuthLevel string // "root" or "database"
}

// schemaSQL defines the kv table. The record id is the full key, so point
// lookups go through type::record; the indexed key field backs prefix scans.
const schemaSQL = `
DEFINE TABLE IF NOT EXISTS kv SCHEMAFULL;
DEFINE FIELD IF NOT EXISTS key ON kv TYPE string;
DEFINE FIELD IF NOT EXISTS value ON kv FLEXIBLE TYPE object;
DEFINE INDEX IF NOT EXISTS kv_key_idx ON kv FIELDS key UNIQUE;
`

// Surreal is a Store backed by SurrealDB over an auto-reconnecting WebSocket.
type Surreal struct {
	conn    *rews.Connection[*gorillaws.Connection]
	db      *surrealdb.DB
	cfg     SurrealConfig
	logger  logger.Logger
	metrics *metrics.Collector
}

// NewSurreal connects to SurrealDB, authenticates, selects the configured
// namespace/database and ensures the kv schema exists. The collector is
// optional; when non-nil, per-operation timings are recorded on it.
func NewSurreal(ctx context.Context, cfg SurrealConfig, log *slog.Logger, collector *metrics.Collector) (*Surreal, error) {
	var sdkLogger logger.Logger
	if log != nil {
		sdkLogger = logger.New(log.Handler())
	} else {
		sdkLogger = logger.New(slog.Default().Handler())
	}

	// surrealcbor handles SurrealDB custom CBOR tags
	codec := surrealcbor.New()

	// gorillaws requires the URL without /rpc suffix (it adds /rpc internally)
	baseURL := strings.TrimSuffix(cfg.URL, "/rpc")

	conn := rews.New(
		func(ctx context.Context) (*gorillaws.Connection, error) {
			ws := gorillaws.New(&connection.Config{
				BaseURL:     baseURL,
				Marshaler:   codec,
				Unmarshaler: codec,
				Logger:      sdkLogger,
			})
			return ws, nil
		},
		5*time.Second,
		codec,
		sdkLogger,
	)

	retryer := rews.NewExponentialBackoffRetryer()
	retryer.InitialDelay = 1 * time.Second
	retryer.MaxDelay = 30 * time.Second
	retryer.Multiplier = 2.0
	retryer.MaxRetries = 10
	conn.Retryer = retryer

	sdkLogger.Info("connecting to SurrealDB", "url", cfg.URL)
	if err := conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("from connection: %w", err)
	}

	if cfg.AuthLevel == "database" {
		_, err = db.SignIn(ctx, surrealdb.Auth{
			Namespace: cfg.Namespace,
			Database:  cfg.Database,
			Username:  cfg.Username,
			Password:  cfg.Password,
		})
	} else {
		// Default to root auth
		_, err = db.SignIn(ctx, surrealdb.Auth{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("signin: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("use: %w", err)
	}

	s := &Surreal{conn: conn, db: db, cfg: cfg, logger: sdkLogger, metrics: collector}
	if err := s.initSchema(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}

	sdkLogger.Info("SurrealDB connection established")
	return s, nil
}

// Close closes the SurrealDB connection.
func (s *Surreal) Close(ctx context.Context) error {
	s.logger.Info("closing SurrealDB connection")
	return s.conn.Close(ctx)
}

func (s *Surreal) initSchema(ctx context.Context) error {
	if _, err := surrealdb.Query[any](ctx, s.db, schemaSQL, nil); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// kvRow is the wire shape of a kv table record.
type kvRow struct {
	Key   string         `json:"key"`
	Value map[string]any `json:"value"`
}

func (s *Surreal) record(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordTiming(op, time.Since(start))
	}
}

func (s *Surreal) Get(ctx context.Context, key string) (json.RawMessage, error) {
	defer s.record(metrics.OpKVGet, time.Now())

	results, err := surrealdb.Query[[]kvRow](ctx, s.db, `
		SELECT key, value FROM type::record("kv", $id)
	`, map[string]any{"id": key})
	if err != nil {
		return nil, fmt.Errorf("kv get: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	value, err := json.Marshal((*results)[0].Result[0].Value)
	if err != nil {
		return nil, fmt.Errorf("kv get: encode value: %w", err)
	}
	return value, nil
}

func (s *Surreal) Set(ctx context.Context, key string, value json.RawMessage) error {
	defer s.record(metrics.OpKVSet, time.Now())

	var decoded map[string]any
	if err := json.Unmarshal(value, &decoded); err != nil {
		return fmt.Errorf("kv set: decode value: %w", err)
	}

	_, err := surrealdb.Query[any](ctx, s.db, `
		UPSERT type::record("kv", $id) SET key = $key, value = $value
	`, map[string]any{"id": key, "key": key, "value": decoded})
	if err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

func (s *Surreal) Delete(ctx context.Context, key string) error {
	defer s.record(metrics.OpKVDelete, time.Now())

	_, err := surrealdb.Query[any](ctx, s.db, `
		DELETE type::record("kv", $id)
	`, map[string]any{"id": key})
	if err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

func (s *Surreal) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	defer s.record(metrics.OpKVScan, time.Now())

	results, err := surrealdb.Query[[]kvRow](ctx, s.db, `
		SELECT key, value FROM kv WHERE string::starts_with(key, $prefix) ORDER BY key
	`, map[string]any{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("kv scan: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	rows := (*results)[0].Result
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		value, err := json.Marshal(row.Value)
		if err != nil {
			return nil, fmt.Errorf("kv scan: encode value for %q: %w", row.Key, err)
		}
		entries = append(entries, Entry{Key: row.Key, Value: value})
	}
	return entries, nil
}
