// SPDX-License-Identifier: MIT

// Command lvmarray inspects and converts n-dimensional array files
// (NPY, PGM, BMP).
package main

import (
	"context"

	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(NewCLI().ExecuteContext(context.Background()))
}
