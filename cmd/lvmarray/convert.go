// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvmarray/envconfig"
	"github.com/katalvlaran/lvmarray/ndio"
)

var errSameFormat = errors.New("input already has the target format")

// ConvertHandler converts every argument next to itself, LVMARRAY_WORKERS
// files at a time. The first failure cancels the files not yet started.
func ConvertHandler(cmd *cobra.Command, args []string) error {
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}
	target, err := formatOf("." + to)
	if err != nil {
		return err
	}
	var opts []ndio.Option
	if half, _ := cmd.Flags().GetBool("half"); half {
		opts = append(opts, ndio.WithHalfPrecision())
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(envconfig.Workers())
	for _, in := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return convertFile(in, target, opts...)
		})
	}

	return g.Wait()
}

func convertFile(in string, target fileFormat, opts ...ndio.Option) error {
	out := strings.TrimSuffix(in, filepath.Ext(in)) + "." + string(target)
	if format, err := formatOf(in); err != nil {
		return err
	} else if format == target {
		return fmt.Errorf("%s: %w", in, errSameFormat)
	}

	a, err := loadFloat(in)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := saveFloat(out, target, a.AsView(), opts...); err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}
	slog.Info("converted", "from", in, "to", out, "shape", a.Shape())

	return nil
}
