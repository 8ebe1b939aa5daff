// Package retry classifies failures by whether repeating them can help.
//
// Errors wrapped with [Fatal] come from inconsistencies that regenerating the
// same input will never fix. Callers report them as non-retryable.
package retry
