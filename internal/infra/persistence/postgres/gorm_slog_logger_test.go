package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func sqlFn() (string, int64) {
	return "SELECT * FROM accounts", 2
}

func TestGormSlogLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("failed query is logged as error", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), &config.Config{})
		l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))

		assert.Contains(t, buf.String(), "GORM query failed")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), &config.Config{})
		l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow query is logged as warning", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), &config.Config{})
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)

		assert.Contains(t, buf.String(), "GORM slow query")
	})

	t.Run("fast query only in debug", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), &config.Config{})
		l.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Empty(t, buf.String())

		debugCfg := &config.Config{}
		debugCfg.Env.Debug = true
		l = newGormSlogLogger(newBufferLogger(&buf), debugCfg)
		l.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Contains(t, buf.String(), "GORM query")
	})

	t.Run("silent mode", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), &config.Config{}).LogMode(logger.Silent)
		l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))

		assert.Empty(t, buf.String())
	})
}

func TestGormSlogLogger_RedactsPasswordHashes(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	insert := func() (string, int64) {
		return `INSERT INTO "accounts" ("email","password_hash") VALUES ('a@x.io','` + string(hash) + `')`, 1
	}

	var buf bytes.Buffer
	debugCfg := &config.Config{}
	debugCfg.Env.Debug = true
	l := newGormSlogLogger(newBufferLogger(&buf), debugCfg)
	l.Trace(context.Background(), time.Now(), insert, nil)
	l.Error(context.Background(), "failed with %s", string(hash))

	assert.NotContains(t, buf.String(), string(hash))
	assert.Contains(t, buf.String(), redacted)
	assert.Contains(t, buf.String(), "a@x.io")
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	l := newGormSlogLogger(newBufferLogger(&base), &config.Config{})

	ctx := deliverycontext.WithLogger(context.Background(),
		newBufferLogger(&scoped).With(slog.String("request_id", "req-1")))
	l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), "request_id=req-1")
	assert.Contains(t, scoped.String(), "GORM query failed")
}
