package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lcrf/crf/model"
)

func newDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <model-file>",
		Short: "Print a trained model's header, labels, attributes, and features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "crfsuite dump: reading model")
			}
			reader, err := model.Open(buf)
			if err != nil {
				return errors.Wrap(err, "crfsuite dump: opening model")
			}
			return reader.Dump(cmd.OutOrStdout())
		},
	}
	return cmd
}
