// Package errs defines the shared error-kind discriminants used across the
// structural-comparison core (geomkit, residue, tally, alignment, superpose,
// cluster, pdbio) so that callers can branch on failure class with a single
// errors.As, regardless of which package raised it.
//
// Design:
//   - Kind is a closed enum; there is no error hierarchy, only discriminants.
//   - *Error carries the kind plus the operation that failed, the wrapped
//     cause, and an optional Location (entry index + column, or edge).
//   - Local operations (geometry, tally, split-mapping, orderer) return
//     *Error directly; the refiner translates a KindNumerical from its
//     Realign step into reject-and-continue instead of propagating it (see
//     alignment.Refiner.Run). superpose.Compose does not: it returns every
//     pairwise-fit error, KindNumerical included, to its caller.
package errs

import (
	"errors"
	"fmt"
)

// Kind discriminates the class of failure. There is no subtyping: a Kind is
// either exactly one of these values or it is a programmer error (String
// renders any other value as "unknown").
type Kind int

const (
	// KindInvalidArgument indicates a precondition on function arguments was
	// violated (e.g. mismatched slice lengths, malformed ResidueId text).
	KindInvalidArgument Kind = iota + 1

	// KindParse indicates a textual or binary input could not be decoded.
	KindParse

	// KindTally indicates the PDB/coord residue tally could not reconcile
	// the two streams under the configured options.
	KindTally

	// KindNumerical indicates an underlying numeric kernel (SVD, etc.)
	// failed to converge or produced a non-finite result.
	KindNumerical

	// KindDisconnected indicates a graph expected to be connected (spanning
	// tree input) was not.
	KindDisconnected

	// KindInsufficientCommonAtoms indicates a pairwise fit had fewer than
	// the minimum required shared atoms (3).
	KindInsufficientCommonAtoms

	// KindClash indicates two cluster-mapping entries claim overlapping
	// segments of the same underlying sequence.
	KindClash

	// KindIO indicates a failure reading or writing an external resource.
	KindIO

	// KindNotImplemented indicates a documented but unimplemented code path,
	// used sparingly for features explicitly scoped out of this core.
	KindNotImplemented
)

// String renders a Kind as a short lower-case tag, used in diagnostic lines.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid-argument"
	case KindParse:
		return "parse"
	case KindTally:
		return "tally"
	case KindNumerical:
		return "numerical"
	case KindDisconnected:
		return "disconnected"
	case KindInsufficientCommonAtoms:
		return "insufficient-common-atoms"
	case KindClash:
		return "clash"
	case KindIO:
		return "io"
	case KindNotImplemented:
		return "not-implemented"
	default:
		return "unknown"
	}
}

// Location pinpoints where, in the domain data, an error occurred. Either
// Entry/Column or EdgeI/EdgeJ is meaningful, never both; the zero value of
// the unused pair is -1 so it is distinguishable from a valid index 0.
type Location struct {
	Entry  int
	Column int
	EdgeI  int
	EdgeJ  int
}

// NoLocation is the Location used when no position is meaningful.
var NoLocation = Location{Entry: -1, Column: -1, EdgeI: -1, EdgeJ: -1}

// Error is the shared error type returned by most public operations in this
// module (a few, such as alignment.Alignment.ColumnScore, return plain
// errors). It wraps an underlying cause (which may be nil) and records which
// step and kind produced it.
type Error struct {
	Kind     Kind
	Op       string
	Location Location
	Err      error
}

// Error implements the error interface, formatting "<op>: <kind>: <cause>"
// with an optional location suffix.
func (e *Error) Error() string {
	loc := ""
	if e.Location != NoLocation {
		switch {
		case e.Location.Entry >= 0:
			loc = fmt.Sprintf(" (entry=%d col=%d)", e.Location.Entry, e.Location.Column)
		case e.Location.EdgeI >= 0:
			loc = fmt.Sprintf(" (edge=%d,%d)", e.Location.EdgeI, e.Location.EdgeJ)
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v%s", e.Op, e.Kind, e.Err, loc)
	}
	return fmt.Sprintf("%s: %s%s", e.Op, e.Kind, loc)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error with no specific location.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Location: NoLocation, Err: err}
}

// At constructs an *Error carrying a Location.
func At(kind Kind, op string, err error, loc Location) *Error {
	return &Error{Kind: kind, Op: op, Location: loc, Err: err}
}

// Is reports whether err (or any error in its chain) carries the given Kind.
// This lets callers write errs.Is(err, errs.KindNumerical) instead of
// manually errors.As-ing into *Error.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
