package conjugator

import "errors"

// Sentinel errors for the conjugator package.
// Use errors.Is to check: errors.Is(err, conjugator.ErrUnknownVerb)
var (
	ErrUnknownVerb   = errors.New("conjugator: unknown verb")
	ErrInvalidTense  = errors.New("conjugator: invalid tense")
	ErrInvalidPerson = errors.New("conjugator: invalid person")
)
