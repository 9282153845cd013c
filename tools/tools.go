//go:build tools

// Package tools pins code generators to the versions in go.mod so that
// `go generate ./internal/mocks` and CI resolve the same mockgen build.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
