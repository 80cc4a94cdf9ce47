package tracesetting

import "errors"

// ErrInvalidArgument is the sentinel wrapped by Merge when a proposed
// update produces an invalid setting for a reason other than disabling
// tracing (level == DISABLED is always allowed).
var ErrInvalidArgument = errors.New("tracesetting: invalid argument")
