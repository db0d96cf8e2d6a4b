/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sanitize normalizes externally supplied identifiers into strings
// that are safe to use as a single filesystem path segment. Every
// organization name, identity id, wallet label or gateway id crosses this
// package before it touches a path.
package sanitize

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidPathSegment signals that an identifier cannot be turned into a
// usable path segment.
var ErrInvalidPathSegment = errors.New("invalid path segment")

// reservedNames are device names some filesystems refuse as path segments,
// with or without an extension.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Segment maps an untrusted identifier to a safe path segment. It is
// deterministic and never returns an empty string without an error.
func Segment(s string) (string, error) {
	out := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == 0:
			return -1
		case r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			return -1
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)

	// a leading dot run would allow "." or ".." style segments
	out = strings.Trim(out, ". ")
	if len(out) == 0 {
		return "", errors.Wrapf(ErrInvalidPathSegment, "identifier %q", s)
	}

	base, _, _ := strings.Cut(out, ".")
	if _, ok := reservedNames[strings.ToUpper(base)]; ok {
		return "", errors.Wrapf(ErrInvalidPathSegment, "identifier %q is a reserved name", s)
	}
	return out, nil
}
