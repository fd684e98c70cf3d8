package script

import "errors"

// Script errors.
var (
	// ErrScriptNotFound indicates no script is registered under the name.
	ErrScriptNotFound = errors.New("script not found")
	// ErrNoTransform indicates the script defines no transform function.
	ErrNoTransform = errors.New("script does not define a transform function")
	// ErrBadResult indicates the transform returned something other than a
	// table of strings.
	ErrBadResult = errors.New("transform must return a table of strings")
)
