package duracache

import (
	"strings"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/duracache/internal/util"
)

// GlobalNamespace is the single namespace shared by all global-scope values.
const GlobalNamespace = "global"

// workspacePrefixLen bounds the readable part of a workspace namespace; the
// checksum disambiguates paths sharing a prefix.
const workspacePrefixLen = 16

// ChecksumFunc derives a short stable digest from a directory path.
type ChecksumFunc func(path string) string

// Resolver computes storage namespaces for the three value lifetimes:
// global, workspace (one directory) and session (nested in a workspace).
// The zero value is ready to use with the built-in checksum.
type Resolver struct {
	// Checksum overrides the default sha256-based digest. It must be
	// deterministic; two distinct paths should map to distinct digests.
	Checksum ChecksumFunc
}

// Global returns the fixed namespace for global-scope values.
func (Resolver) Global() string { return GlobalNamespace }

// Workspace derives a deterministic namespace from a directory path: a
// sanitized short prefix for readability plus a checksum of the full
// normalized path so two directories sharing a prefix never collide.
func (r Resolver) Workspace(dir string) string {
	dir = normalizePath(dir)
	prefix := util.Sanitize(dir)
	if len(prefix) > workspacePrefixLen {
		prefix = prefix[:workspacePrefixLen]
	}
	return "ws-" + prefix + "-" + r.checksum(dir)
}

// Session scopes a key to one session within a workspace. Sessions share
// the workspace's storage area rather than getting a namespace of their
// own; the key is nested under a session prefix instead.
func (r Resolver) Session(dir, sessionID string) (namespace, keyPrefix string) {
	return r.Workspace(dir), "session:" + sessionID + ":"
}

// Scoped resolves a key to (namespace, full key): session-scoped when
// sessionID is non-empty, workspace-scoped otherwise.
func (r Resolver) Scoped(dir, sessionID, key string) (namespace, fullKey string) {
	if sessionID == "" {
		return r.Workspace(dir), key
	}
	ns, prefix := r.Session(dir, sessionID)
	return ns, prefix + key
}

func (r Resolver) checksum(s string) string {
	if r.Checksum != nil {
		return r.Checksum(s)
	}
	return util.Checksum(s)
}

// NewSessionID mints an identifier for a new session scope.
func NewSessionID() string { return uuid.NewString() }

// normalizePath strips trailing path separators so equivalent spellings of
// a directory resolve to the same namespace.
func normalizePath(dir string) string {
	for len(dir) > 1 && (strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, "\\")) {
		dir = dir[:len(dir)-1]
	}
	return dir
}
