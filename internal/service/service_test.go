package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/raphaelgruber/wellkeep/internal/kv"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// failingKV errors on every operation.
type failingKV struct{}

var errKVDown = errors.New("connection refused")

func (failingKV) Get(context.Context, string) (json.RawMessage, error) { return nil, errKVDown }
func (failingKV) Set(context.Context, string, json.RawMessage) error   { return errKVDown }
func (failingKV) Delete(context.Context, string) error                 { return errKVDown }
func (failingKV) ScanPrefix(context.Context, string) ([]kv.Entry, error) {
	return nil, errKVDown
}

// failingBlobs errors on every operation.
type failingBlobs struct{}

var errBlobDown = errors.New("bucket unavailable")

func (failingBlobs) Upload(context.Context, string, []byte, string) error { return errBlobDown }
func (failingBlobs) SignedURL(context.Context, string, time.Duration) (string, error) {
	return "", errBlobDown
}
func (failingBlobs) Remove(context.Context, string) error         { return errBlobDown }
func (failingBlobs) List(context.Context, string) ([]string, error) { return nil, errBlobDown }
