// Package kv is the durable key/value storage behind the session store.
//
// # Overview
//
// Repository stores opaque byte values under string keys, each with an
// optional time-to-live. Two implementations are provided:
//
//   - SQLiteRepository: a local file (table kv, created by goose migrations
//     from internal/client/migrations). Expiry is evaluated on read against
//     the expires_at column; PurgeExpired removes stale rows.
//   - RedisRepository: keys live under a prefix and use native Redis TTLs.
//
// # Atomicity
//
// SetAll and Delete touch several keys as one unit: a transaction for
// SQLite, a Lua script or a multi-key DEL for Redis. Readers never observe
// half of a SetAll or half of a Delete.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.SetAll(ctx, map[string][]byte{"authToken": tok, "userData": js}, 7*24*time.Hour)
//	v, _ := repo.Get(ctx, "authToken") // nil when absent or expired
//	_ = repo.Delete(ctx, "authToken", "userData", "pendingEmail")
package kv
