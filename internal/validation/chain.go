// Package validation gates search requests before they reach business logic.
//
// A Chain holds an ordered list of links fixed at construction. Each link either
// rejects the request (returns an error), approves it outright, or hands it to the next
// link. The final link is always the explicit terminal, which approves.
package validation

import (
	"context"
	"errors"
)

// Decision is a link's verdict on a request it did not reject.
type Decision int

const (
	// Next hands the request to the following link.
	Next Decision = iota
	// Approve accepts the request without consulting later links.
	Approve
)

// Request is what the chain inspects. Links may enrich it, e.g. authentication sets
// Identity for authorization to read.
type Request struct {
	Authorization string
	Identity      *Identity
}

// Validator is one link of the chain. A non-nil error rejects the request.
type Validator interface {
	Validate(ctx context.Context, req *Request) (Decision, error)
}

// Rejection carries the category (domain.ErrUnauthorized, domain.ErrForbidden) and a
// reason that is safe to show the caller.
type Rejection struct {
	Err    error
	Reason string
}

func (r *Rejection) Error() string {
	return r.Err.Error() + ": " + r.Reason
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func reject(err error, reason string) error {
	return &Rejection{Err: err, Reason: reason}
}

// Chain runs links in order and stops at the first rejection or approval.
type Chain struct {
	links []Validator
}

// NewChain builds a chain from links in the given order, followed by the terminal link.
func NewChain(links ...Validator) *Chain {
	all := make([]Validator, 0, len(links)+1)
	for _, l := range links {
		if l != nil {
			all = append(all, l)
		}
	}
	all = append(all, terminal{})
	return &Chain{links: all}
}

// Validate returns nil when the request is allowed, or the rejecting link's error.
func (c *Chain) Validate(ctx context.Context, req *Request) error {
	for _, link := range c.links {
		decision, err := link.Validate(ctx, req)
		if err != nil {
			return err
		}
		if decision == Approve {
			return nil
		}
	}
	// Only reachable if the terminal link is removed.
	return errors.New("validation chain ended without a decision")
}

// terminal ends every chain.
type terminal struct{}

func (terminal) Validate(context.Context, *Request) (Decision, error) {
	return Approve, nil
}
