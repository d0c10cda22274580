// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "errors"

// Failure categories. Components wrap the underlying cause with one of these so callers
// can tell a transport failure from a content failure with errors.Is.
var (
	ErrTransport  = errors.New("transport failure")
	ErrContent    = errors.New("content failure")
	ErrCompletion = errors.New("completion failure")
	ErrMalformed  = errors.New("malformed completion")
)
