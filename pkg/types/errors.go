// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Pipeline error taxonomy. All but ErrNoUsableInput are recovered where they
// occur; callers check them with errors.Is.
var (
	// ErrMissingSource means the sheet backing a section is absent. The
	// section renders a placeholder notice instead.
	ErrMissingSource = errors.New("missing source sheet")

	// ErrMalformedRow means a row lacks its required fields and was skipped.
	ErrMalformedRow = errors.New("malformed row")

	// ErrMalformedField means a numeric or date value could not be parsed
	// and was treated as absent.
	ErrMalformedField = errors.New("malformed field")

	// ErrUnknownValue means a role or category is outside the allow-list;
	// the record is kept.
	ErrUnknownValue = errors.New("unrecognized value")

	// ErrRenderingDegenerate means a record rendered to an empty entry and
	// was omitted.
	ErrRenderingDegenerate = errors.New("degenerate entry")

	// ErrNoUsableInput means no section had any usable input. It is the
	// only terminal failure of a build.
	ErrNoUsableInput = errors.New("no usable input in any section")
)
