package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lcrf/crf/encode"
	"github.com/katalvlaran/lcrf/crf/model"
	"github.com/katalvlaran/lcrf/crfdata"
	"github.com/katalvlaran/lcrf/crfio"
)

func newTagCommand() *cobra.Command {
	var (
		modelPath   string
		probability bool
		reference   bool
		marginal    bool
		marginalAll bool
	)

	cmd := &cobra.Command{
		Use:   "tag [item-files...]",
		Short: "Label one or more item files with a trained model",
		Example: `  crfsuite tag --model ner.model test.data
  crfsuite tag --model ner.model --probability --marginal-all test.data`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if modelPath == "" {
				return errors.New("crfsuite tag: --model is required")
			}

			buf, err := os.ReadFile(modelPath)
			if err != nil {
				return errors.Wrap(err, "crfsuite tag: reading model")
			}
			reader, err := model.Open(buf)
			if err != nil {
				return errors.Wrap(err, "crfsuite tag: opening model")
			}

			enc, err := encode.FromModel(reader)
			if err != nil {
				return errors.Wrap(err, "crfsuite tag: rebuilding encoder")
			}

			weights := make([]float64, enc.NumFeatures())
			for fid := range weights {
				f, err := reader.Feature(fid)
				if err != nil {
					return err
				}
				weights[fid] = f.Freq
			}
			if err := enc.SetWeights(weights, 1.0); err != nil {
				return errors.Wrap(err, "crfsuite tag: loading weights")
			}

			ds := crfdata.NewDataset()
			ds.Labels, ds.Attrs = reader.Labels, reader.Attrs
			for _, path := range args {
				if err := readItemFile(ds, path, 0); err != nil {
					return errors.Wrapf(err, "crfsuite tag: reading %q", path)
				}
			}

			opts := crfio.TagOptions{
				Probability: probability,
				Reference:   reference,
				Marginal:    marginal,
				MarginalAll: marginalAll,
			}

			out := cmd.OutOrStdout()
			for idx := range ds.Instances {
				inst := &ds.Instances[idx]
				if err := enc.SetInstance(inst); err != nil {
					return err
				}
				pred := make([]int, inst.Len())
				score, err := enc.Viterbi(pred)
				if err != nil {
					return err
				}
				logNorm, err := enc.PartitionFactor()
				if err != nil {
					return err
				}

				marginalFn := func(label, pos int) float64 {
					p, _ := enc.Marginal(label, pos)
					return p
				}

				if err := crfio.WriteTagged(out, reader.Labels.Names(), inst.Labels, pred, score, logNorm, marginalFn, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "trained model file path (required)")
	cmd.Flags().BoolVar(&probability, "probability", false, "print the sequence score and probability header")
	cmd.Flags().BoolVar(&reference, "reference", false, "also print each position's reference (gold) label")
	cmd.Flags().BoolVar(&marginal, "marginal", false, "append the predicted label's marginal probability")
	cmd.Flags().BoolVar(&marginalAll, "marginal-all", false, "append every label's marginal probability")

	return cmd
}
