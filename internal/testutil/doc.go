// Package testutil provides helpers for tests that build changelog trees on
// disk and compare them before and after an operation.
package testutil
