package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/duracache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	EvictionEvery   uint64
	SelfHealEvery   uint64
	QuotaRetryEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	evictionCtr   atomic.Uint64
	selfHealCtr   atomic.Uint64
	quotaRetryCtr atomic.Uint64
}

var _ duracache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) QuotaRetry(storageKey string) {
	if h.l == nil || !sample(h.opts.QuotaRetryEvery, &h.quotaRetryCtr) {
		return
	}
	h.l.Debug("duracache.quota_retry",
		"key", h.redact(storageKey))
}

func (h *Hooks) EvictionFreed(storageKey, victim string, size int) {
	if h.l == nil || !sample(h.opts.EvictionEvery, &h.evictionCtr) {
		return
	}
	h.l.Info("duracache.eviction_freed",
		"key", h.redact(storageKey),
		"victim", h.redact(victim),
		"size", size)
}

func (h *Hooks) EvictionExhausted(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("duracache.eviction_exhausted",
		"key", h.redact(storageKey),
		"msg", "value retained in memory cache only")
}

func (h *Hooks) BreakerTripped(namespace string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("duracache.breaker_tripped",
		"namespace", namespace,
		"err", err)
}

func (h *Hooks) LegacyMigrated(key, legacyKey string) {
	if h.l == nil {
		return
	}
	h.l.Info("duracache.legacy_migrated",
		"key", h.redact(key),
		"legacy", h.redact(legacyKey))
}

func (h *Hooks) SelfHealRewrite(key string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("duracache.self_heal_rewrite",
		"key", h.redact(key))
}

func (h *Hooks) MalformedRecord(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("duracache.malformed_record",
		"key", h.redact(key))
}
