package services

import (
	"context"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
)

// Operation is the coarse kind of a request as seen by access rules.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
)

// Owned is a resource with a single owning user.
type Owned interface {
	OwnerID() uint
}

// AccessRequest is what a Rule decides on. Target is nil for request level
// rules and holds the loaded resource for object level rules.
type AccessRequest struct {
	Caller *models.Identity
	Op     Operation
	Target Owned
}

// Rule returns nil to allow, or the errorx failure to deny.
type Rule func(req *AccessRequest) error

// IsAuthenticated requires an identity for every operation.
func IsAuthenticated(req *AccessRequest) error {
	if req.Caller == nil {
		return errorx.ErrAuthenticationRequired
	}
	return nil
}

// AuthenticatedOrReadOnly lets anyone read and requires an identity to write.
func AuthenticatedOrReadOnly(req *AccessRequest) error {
	if req.Op == OpRead {
		return nil
	}
	return IsAuthenticated(req)
}

// OwnerOrReadOnly lets anyone read and only the owner write.
func OwnerOrReadOnly(req *AccessRequest) error {
	if req.Op == OpRead {
		return nil
	}
	if req.Caller == nil {
		return errorx.ErrAuthenticationRequired
	}
	if req.Target == nil || req.Target.OwnerID() != req.Caller.UserID {
		return errorx.ErrNotOwner
	}
	return nil
}

// Policy is an ordered chain: request rules, then the resource load (a miss
// is NotFound), then object rules. Existence is therefore decided before
// ownership, and identity before both.
type Policy struct {
	Request []Rule
	Object  []Rule
}

var (
	// ContentPolicy guards posts, comments and notifications.
	ContentPolicy = Policy{
		Request: []Rule{AuthenticatedOrReadOnly},
		Object:  []Rule{OwnerOrReadOnly},
	}
	// CatalogPolicy guards the book catalog: public reads, authenticated writes.
	CatalogPolicy = Policy{
		Request: []Rule{AuthenticatedOrReadOnly},
	}
	// MemberPolicy guards actions that only make sense for a known caller
	// (feed, like, follow).
	MemberPolicy = Policy{
		Request: []Rule{IsAuthenticated},
	}
)

// Check runs only the request rules.
func (p Policy) Check(caller *models.Identity, op Operation) error {
	req := &AccessRequest{Caller: caller, Op: op}
	for _, rule := range p.Request {
		if err := rule(req); err != nil {
			return err
		}
	}
	return nil
}

// Authorize runs the full chain and returns the loaded resource.
func Authorize[T Owned](
	ctx context.Context,
	p Policy,
	caller *models.Identity,
	op Operation,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	if err := p.Check(caller, op); err != nil {
		return zero, err
	}

	target, err := load(ctx)
	if err != nil {
		return zero, err
	}

	req := &AccessRequest{Caller: caller, Op: op, Target: target}
	for _, rule := range p.Object {
		if err := rule(req); err != nil {
			return zero, err
		}
	}
	return target, nil
}
