//go:build !sample

package app

import "github.com/spf13/cobra"

// registerServeSample is a no-op in the default build; serve-sample only
// exists in binaries built with -tags sample (SPEC_FULL.md §4.10).
func registerServeSample(_ *cobra.Command) {}
