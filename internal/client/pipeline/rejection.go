package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a rejection.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindGateway      Kind = "gateway"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindPartial      Kind = "partial"
)

// Rejection is the error every pipeline operation fails with.
type Rejection struct {
	Kind   Kind
	Reason string
	Err    error
}

func (r *Rejection) Error() string {
	return r.Reason
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func invalid(reason string) *Rejection {
	return &Rejection{Kind: KindValidation, Reason: reason}
}

func denied(reason string, err error) *Rejection {
	return &Rejection{Kind: KindUnauthorized, Reason: reason, Err: err}
}

func notFound(reason string) *Rejection {
	return &Rejection{Kind: KindNotFound, Reason: reason}
}

// failed passes the gateway message through verbatim.
func failed(err error) *Rejection {
	return &Rejection{Kind: KindGateway, Reason: err.Error(), Err: err}
}

func partial(err error) *Rejection {
	return &Rejection{Kind: KindPartial, Reason: err.Error(), Err: err}
}

// AsRejection returns err as a *Rejection, wrapping foreign errors as
// gateway failures. nil stays nil.
func AsRejection(err error) *Rejection {
	if err == nil {
		return nil
	}
	var r *Rejection
	if errors.As(err, &r) {
		return r
	}
	return failed(err)
}

// Reason is the user-facing text of err.
func Reason(err error) string {
	if r := AsRejection(err); r != nil {
		return r.Reason
	}
	return ""
}

// Recovered turns a recovered panic value into a rejection.
func Recovered(v any) *Rejection {
	return &Rejection{Kind: KindGateway, Reason: fmt.Sprintf("unexpected failure: %v", v)}
}
