package main

import (
	"github.com/aretw0/conduit/pkg/adapters/file"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Rewrite a pipeline document as JSON or YAML",
	Long:  `Reads any supported document (JSON, YAML, HCL), checks it decodes into a well-formed pipeline and writes it in the format given by the output extension.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPipeline(args[0])
		if err != nil {
			return err
		}
		return file.Save(args[1], wire.Serialize(p.Snapshot()))
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
