// Package private and subdirectories have
// no backward compatibility guarantees.
//
// This package is intentionally not named "internal",
// which would prevent access outside the sqlext package.
// These packages are available for use, it's just that
// their public API is subject to change.
package private
