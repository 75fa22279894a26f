/*
 * errors.go, part of corelevels.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chem

import (
	"errors"
	"fmt"
	"strings"
)

// The kinds of errors returned by this library. Use errors.Is to
// check an error returned by any function against them.
// "Nothing matched" is never an error: empty selections are returned as empty slices.
var (
	ErrInvalidChainSpec  = errors.New("invalid bond-chain specification")
	ErrUnknownIndex      = errors.New("unknown atom index")
	ErrUnknownElement    = errors.New("unknown element")
	ErrInvalidTolerance  = errors.New("invalid tolerance factor")
	ErrMissingPopulation = errors.New("missing population data")
	ErrMismatch          = errors.New("mismatched atoms and coordinates")
)

// CError is the error type for the chem package and the packages built on top of it. It fullfills Error.
// It unwraps to one of the Err* kinds above.
type CError struct {
	msg      string
	kind     error
	deco     []string
	critical bool
}

// NewError returns a critical *CError of the given kind, decorated with the
// name of the function that detected it.
func NewError(kind error, caller string, format string, a ...interface{}) *CError {
	err := &CError{msg: fmt.Sprintf(format, a...), kind: kind, critical: true}
	err.Decorate(caller)
	return err
}

// Error returns a string with an error message.
func (err *CError) Error() string {
	if err.kind == nil {
		return err.msg
	}
	if err.msg == "" {
		return err.kind.Error()
	}
	return err.kind.Error() + ": " + err.msg
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns whether the error is critical or it can be ignored.
func (err *CError) Critical() bool { return err.critical }

// Unwrap returns the kind of the error.
func (err *CError) Unwrap() error { return err.kind }

// Trace returns the decoration as a single string, innermost function first.
func (err *CError) Trace() string {
	return strings.Join(err.deco, " <- ")
}

// ErrDecorate adds caller to the decoration of err if err implements Error,
// and returns err. Other errors are wrapped with the caller name.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var err2 Error
	if errors.As(err, &err2) {
		err2.Decorate(caller)
		return err
	}
	return fmt.Errorf("%s: %w", caller, err)
}
