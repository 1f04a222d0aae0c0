package xcontext

import (
	"context"
	"net/http"

	"github.com/questclash/backend/config"
	"github.com/questclash/backend/pkg/authenticator"
	"github.com/questclash/backend/pkg/logger"
	"github.com/questclash/backend/pkg/session"
	"gorm.io/gorm"
)

type (
	dbKey            struct{}
	dbTransactionKey struct{}
	configsKey       struct{}
	loggerKey        struct{}
	tokenEngineKey   struct{}
	sessionStoreKey  struct{}
	httpRequestKey   struct{}
	httpWriterKey    struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current transaction if one is open, otherwise the root
// database handle.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("cannot get database from context")
	}

	return db
}

// WithDBTransaction begins a transaction on the context database. Until
// WithCommitDBTransaction or WithRollbackDBTransaction is called on the
// returned context, DB resolves to the transaction.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTransactionKey{}, DB(ctx).Begin())
}

// WithCommitDBTransaction commits the current transaction. It is a no-op
// if no transaction is open.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok && tx != nil {
		tx.Commit()
	}

	return context.WithValue(ctx, dbTransactionKey{}, (*gorm.DB)(nil))
}

// WithRollbackDBTransaction rolls back the current transaction. Safe to
// defer after a commit, gorm ignores a rollback of a finished transaction.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok && tx != nil {
		tx.Rollback()
	}

	return context.WithValue(ctx, dbTransactionKey{}, (*gorm.DB)(nil))
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("cannot get configs from context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		panic("cannot get logger from context")
	}

	return l
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine, ok := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
	if !ok {
		panic("cannot get token engine from context")
	}

	return engine
}

func WithSessionStore(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) *session.Store {
	store, ok := ctx.Value(sessionStoreKey{}).(*session.Store)
	if !ok {
		panic("cannot get session store from context")
	}

	return store
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	if !ok {
		panic("cannot get http request from context")
	}

	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	if !ok {
		panic("cannot get http writer from context")
	}

	return w
}
