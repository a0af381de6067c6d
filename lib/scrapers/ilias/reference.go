package ilias

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type RefState int

const (
	// RefUnavailable: the portal rendered no link to the target.
	RefUnavailable RefState = iota
	// RefUnresolved: the link is known but has not been fetched yet.
	RefUnresolved
	// RefResolved: fetched and parsed, the value is cached.
	RefResolved
)

// Reference is a lazy, memoizing cell for a linked portal object. It
// fetches and parses its target at most once; Resolve on a resolved
// reference returns the cached value and Refresh forces a re-fetch.
//
// A reference is owned by the entity embedding it and is not safe for
// unsynchronized sharing across goroutines.
type Reference[T any, PT elementPtr[T]] struct {
	state     RefState
	querypath Querypath
	value     *T
}

// NewReference builds a reference from an optional link. An empty
// querypath means the portal rendered no link and the reference is
// permanently unavailable.
func NewReference[T any, PT elementPtr[T]](querypath Querypath) Reference[T, PT] {
	if querypath == "" {
		return Reference[T, PT]{state: RefUnavailable}
	}
	return Reference[T, PT]{state: RefUnresolved, querypath: querypath}
}

func (r *Reference[T, PT]) State() RefState {
	return r.state
}

// Querypath returns the link this reference points at, if there is one.
func (r *Reference[T, PT]) Querypath() (Querypath, bool) {
	if r.state == RefUnavailable {
		return "", false
	}
	return r.querypath, true
}

// Peek returns the cached value without ever fetching.
func (r *Reference[T, PT]) Peek() (*T, bool) {
	if r.state != RefResolved {
		return nil, false
	}
	return r.value, true
}

// Resolve returns the referenced object, fetching and parsing it on
// first use. Repeat calls return the cached value without touching the
// transport.
func (r *Reference[T, PT]) Resolve(ctx context.Context, tx Transport) (*T, error) {
	if r.state == RefResolved {
		return r.value, nil
	}
	return r.Refresh(ctx, tx)
}

// Refresh re-fetches and re-parses the referenced object even if it was
// already resolved, replacing the cached value. This is how callers
// observe server-side changes after a mutation.
func (r *Reference[T, PT]) Refresh(ctx context.Context, tx Transport) (*T, error) {
	if r.state == RefUnavailable {
		return nil, ErrReferenceUnavailable
	}

	ctx, span := tracer.Start(ctx, "Reference:Refresh")
	defer span.End()
	span.SetAttributes(attribute.String("querypath", r.querypath.String()))

	value, err := FetchElement[T, PT](ctx, tx, r.querypath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve reference")
		return nil, err
	}

	r.value = value
	r.state = RefResolved
	return value, nil
}
