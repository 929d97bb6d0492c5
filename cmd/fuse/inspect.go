package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/fuse/internal/serialization"
	"github.com/born-ml/fuse/internal/tensor"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the tensors of a SafeTensors file",
		Args:  cobra.ExactArgs(1),
		RunE:  InspectHandler,
	}
}

// InspectHandler prints the metadata and tensor table of a SafeTensors file.
func InspectHandler(cmd *cobra.Command, args []string) error {
	header, err := serialization.ReadFileHeader(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, k := range slices.Sorted(maps.Keys(header.Metadata)) {
		fmt.Fprintf(w, "%s: %s\n", k, header.Metadata[k])
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"NAME", "DTYPE", "SHAPE", "BYTES"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	for _, t := range header.Tensors {
		table.Append([]string{t.Name, t.DType, tensor.Shape(t.Shape).String(), fmt.Sprint(t.Size())})
	}
	table.Render()

	return nil
}
