package embedding

import "errors"

var (
	// ErrEmptyVocabulary means the fit corpus produced no usable terms,
	// e.g. it was empty or contained only stop words.
	ErrEmptyVocabulary = errors.New("empty vocabulary: corpus contains only stop words or no tokens")

	// ErrAlreadyFitted is returned by Fit once a vocabulary exists.
	ErrAlreadyFitted = errors.New("vocabulary already fitted")

	// ErrUnsupportedRecord is returned for record types without a text builder.
	ErrUnsupportedRecord = errors.New("unsupported record type")

	// ErrMissingVector means a similarity input was nil or empty.
	ErrMissingVector = errors.New("missing vector")

	// ErrDegenerateVector means the inputs differ in length or one has zero norm.
	ErrDegenerateVector = errors.New("degenerate vector")
)
