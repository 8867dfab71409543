// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmarray/envconfig"
	"github.com/katalvlaran/lvmarray/geometry"
	"github.com/katalvlaran/lvmarray/marray"
	"github.com/katalvlaran/lvmarray/ndio"
)

type fileInfo struct {
	Path   string
	Format fileFormat
	Type   string
	Shape  []int
	Order  marray.Order
}

// describe reads only the header of path.
func describe(path string) (fileInfo, error) {
	format, err := formatOf(path)
	if err != nil {
		return fileInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return fileInfo{}, err
	}
	defer f.Close()

	info := fileInfo{Path: path, Format: format, Order: marray.LastMajorOrder}
	switch format {
	case formatNPY:
		h, err := ndio.ReadNPYHeader(f)
		if err != nil {
			return fileInfo{}, err
		}
		info.Type, info.Shape, info.Order = h.Kind.String(), h.Shape, h.Order
		if h.Half {
			info.Type = "float16"
		}
	case formatPGM:
		h, err := ndio.ReadPGMHeader(f)
		if err != nil {
			return fileInfo{}, err
		}
		info.Type, info.Shape = marray.KindUint8.String(), []int{h.Width, h.Height}
		if h.MaxValue > 255 {
			info.Type = marray.KindUint16.String()
		}
	case formatBMP:
		shape, err := ndio.ReadBMPShape(f)
		if err != nil {
			return fileInfo{}, err
		}
		info.Type, info.Shape = marray.KindUint8.String(), shape
	}

	return info, nil
}

// InfoHandler prints one table row per file.
func InfoHandler(cmd *cobra.Command, args []string) error {
	var data [][]string
	for _, path := range args {
		info, err := describe(path)
		if err != nil {
			return err
		}
		data = append(data, []string{
			info.Path,
			string(info.Format),
			info.Type,
			formatShape(info.Shape),
			info.Order.String(),
			strconv.Itoa(geometry.Size(info.Shape)),
		})
	}
	renderTable(cmd.OutOrStdout(), []string{"FILE", "FORMAT", "TYPE", "SHAPE", "ORDER", "ELEMENTS"}, data)

	return nil
}

// EnvHandler prints the effective LVMARRAY_* configuration.
func EnvHandler(cmd *cobra.Command, _ []string) error {
	vals := envconfig.Values()
	var data [][]string
	for _, name := range slices.Sorted(maps.Keys(vals)) {
		data = append(data, []string{name, vals[name]})
	}
	renderTable(cmd.OutOrStdout(), []string{"VARIABLE", "VALUE"}, data)

	return nil
}

func renderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
