// Package errors provides structured error types for better observability
// and programmatic error handling across stackcheck.
//
// Each error carries an ErrorCode. The pipeline relies on the codes to decide
// how far a failure reaches: UNKNOWN_PLUGIN and GATHER_FAILED are folded into
// the item's results, MISSING_INPUT ends a single item, and INVALID_CONFIG or
// RUN_FAILED stop the run before any item is scheduled.
//
// Example usage:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeUnknownPlugin,
//	    "no plugin registered for type",
//	    map[string]any{
//	        "category": "gatherer",
//	        "type":     "ftp",
//	    },
//	)
//
//	if errors.CodeOf(err) == errors.ErrCodeUnknownPlugin {
//	    // fold into the gathered result
//	}
package errors
