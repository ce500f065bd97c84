// Package domain defines permission grants and the path matching used to filter the
// credential namespace.
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operation is an action a grant allows on the credentials it covers.
type Operation string

const (
	OperationRead     Operation = "read"
	OperationWrite    Operation = "write"
	OperationDelete   Operation = "delete"
	OperationReadACL  Operation = "read_acl"
	OperationWriteACL Operation = "write_acl"
)

// ParseOperation returns the operation named by s.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.ToLower(s)); op {
	case OperationRead, OperationWrite, OperationDelete, OperationReadACL, OperationWriteACL:
		return op, nil
	default:
		return "", ErrInvalidOperation
	}
}

// Permission grants an actor a set of operations on a path.
//
// Path is either an exact credential name or a prefix followed by "/*". The wildcard
// is only valid as the last segment.
type Permission struct {
	ID         uuid.UUID
	Actor      string
	Path       string
	Operations []Operation
	CreatedAt  time.Time
}

// GrantInput requests operations on a path for an actor.
type GrantInput struct {
	Actor      string
	Path       string
	Operations []Operation
}

// Covers reports whether the grant path applies to name, ignoring case.
func (p *Permission) Covers(name string) bool {
	name = strings.ToLower(name)
	path := strings.ToLower(p.Path)
	if prefix, ok := strings.CutSuffix(path, "*"); ok && strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(name, prefix)
	}
	return path == name
}

// Allows reports whether the grant covers name and includes op.
func (p *Permission) Allows(name string, op Operation) bool {
	return slices.Contains(p.Operations, op) && p.Covers(name)
}

// MergeOperations adds ops missing from the grant, keeping the existing order.
func (p *Permission) MergeOperations(ops []Operation) bool {
	changed := false
	for _, op := range ops {
		if !slices.Contains(p.Operations, op) {
			p.Operations = append(p.Operations, op)
			changed = true
		}
	}
	return changed
}

// AnyAllows reports whether at least one grant allows op on name.
func AnyAllows(permissions []*Permission, name string, op Operation) bool {
	return slices.ContainsFunc(permissions, func(p *Permission) bool {
		return p.Allows(name, op)
	})
}

// FormatOperations joins ops for storage.
func FormatOperations(ops []Operation) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, ",")
}

// ParseOperations splits a stored operation list.
func ParseOperations(s string) ([]Operation, error) {
	if s == "" {
		return nil, nil
	}
	var ops []Operation
	for part := range strings.SplitSeq(s, ",") {
		op, err := ParseOperation(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
