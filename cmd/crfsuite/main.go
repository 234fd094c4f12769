// Command crfsuite is a thin cobra CLI over this module's training and
// tagging packages: train fits a model from an item file, tag labels an
// item file with a trained model, and dump prints a model's contents.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	root := &cobra.Command{
		Use:   "crfsuite",
		Short: "Train and apply linear-chain conditional random fields",
	}
	root.AddCommand(newTrainCommand(), newTagCommand(), newDumpCommand())

	if err := root.Execute(); err != nil {
		klog.Errorf("crfsuite: %v", err)
		os.Exit(1)
	}
}
