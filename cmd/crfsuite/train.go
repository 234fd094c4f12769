package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	lcrf "github.com/katalvlaran/lcrf"
	"github.com/katalvlaran/lcrf/crf/encode"
	"github.com/katalvlaran/lcrf/crf/feature"
	"github.com/katalvlaran/lcrf/crfdata"
	"github.com/katalvlaran/lcrf/crfeval"
	"github.com/katalvlaran/lcrf/crfio"
	"github.com/katalvlaran/lcrf/crftrain"
)

func newTrainCommand() *cobra.Command {
	var (
		algorithm  string
		modelPath  string
		params     []string
		holdout    int
		connectAll bool
		minFreq    float64
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "train [item-files...]",
		Short: "Fit a model from one or more item files",
		Example: `  crfsuite train --model ner.model train.data
  crfsuite train --algorithm perceptron --model ner.model train.data
  crfsuite train --param epochs=200 --param rate=0.05 --model ner.model train.data`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if modelPath == "" {
				return errors.New("crfsuite train: --model is required")
			}

			ds := crfdata.NewDataset()
			for i, path := range args {
				if err := readItemFile(ds, path, i); err != nil {
					return errors.Wrapf(err, "crfsuite train: reading %q", path)
				}
			}
			if ds.Len() == 0 {
				return errors.New("crfsuite train: no instances read")
			}

			train, eval := ds, (*crfdata.Dataset)(nil)
			if holdout >= 0 {
				train, eval = ds.Split(holdout)
			}

			var logger lcrf.LogFunc = lcrf.NopLogger
			if !quiet {
				logger = lcrf.KlogLogger(klog.Level(1))
			}

			opts := feature.DefaultOptions()
			opts.ConnectAllAttrs = connectAll
			opts.ConnectAllEdges = connectAll
			opts.MinFreq = minFreq
			opts.Logger = logger

			enc, err := encode.SetData(train, opts)
			if err != nil {
				return errors.Wrap(err, "crfsuite train: building features")
			}

			kv, err := parseParams(params)
			if err != nil {
				return err
			}

			result, err := runAlgorithm(algorithm, enc, train, kv, logger)
			if err != nil {
				return errors.Wrapf(err, "crfsuite train: algorithm %q", algorithm)
			}

			if err := enc.SaveModel(modelPath, result.Weights, train.Labels, train.Attrs, logger); err != nil {
				return errors.Wrap(err, "crfsuite train: saving model")
			}

			if eval != nil && eval.Len() > 0 {
				if err := reportHoldout(cmd, enc, eval, result.Weights, train.Labels, train.Attrs); err != nil {
					return err
				}
			}

			if !quiet {
				status := "completed"
				if result.Cancelled {
					status = "cancelled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "trained %d features over %d instances in %d epochs (%s), run=%s, wrote %q\n",
					enc.NumFeatures(), train.Len(), result.EpochsDone, status, result.RunID, modelPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "sgd", `training algorithm: "sgd" or "perceptron"`)
	cmd.Flags().StringVar(&modelPath, "model", "", "output model file path (required)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "algorithm parameter as key=value (repeatable)")
	cmd.Flags().IntVar(&holdout, "holdout", -1, "input file index (0-based) to hold out for evaluation; -1 disables holdout")
	cmd.Flags().BoolVar(&connectAll, "connect-all", false, "also generate zero-frequency state and transition features")
	cmd.Flags().Float64Var(&minFreq, "min-freq", 0, "drop observed features with frequency below this threshold")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress logging and the final summary line")

	return cmd
}

func parseParams(params []string) (map[string]string, error) {
	kv := make(map[string]string, len(params))
	for _, p := range params {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, errors.Errorf("crfsuite train: --param %q must be key=value", p)
		}
		kv[name] = value
	}
	return kv, nil
}

func runAlgorithm(algorithm string, enc *encode.Encoder, ds *crfdata.Dataset, kv map[string]string, logger lcrf.LogFunc) (*crftrain.Result, error) {
	switch algorithm {
	case "sgd", "":
		opts := crftrain.DefaultSGDOptions()
		opts.Logger = logger
		if v, ok := kv["epochs"]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.Wrap(err, "param epochs")
			}
			opts.Epochs = n
		}
		if v, ok := kv["rate"]; ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrap(err, "param rate")
			}
			opts.LearningRate = f
		}
		if v, ok := kv["l2"]; ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrap(err, "param l2")
			}
			opts.L2 = f
		}
		return crftrain.TrainSGD(enc, ds, opts)
	case "perceptron":
		opts := crftrain.DefaultPerceptronOptions()
		opts.Logger = logger
		if v, ok := kv["epochs"]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.Wrap(err, "param epochs")
			}
			opts.Epochs = n
		}
		return crftrain.TrainPerceptron(enc, ds, opts)
	default:
		return nil, errors.Errorf("unknown algorithm %q", algorithm)
	}
}

func readItemFile(ds *crfdata.Dataset, path string, groupID int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = crfio.ReadInstances(f, ds, groupID)
	return err
}

func reportHoldout(cmd *cobra.Command, enc *encode.Encoder, eval *crfdata.Dataset, w []float64, labels, attrs *crfdata.Dict) error {
	if err := enc.SetWeights(w, 1.0); err != nil {
		return err
	}
	ev := crfeval.New(labels.Len())
	for idx := range eval.Instances {
		inst := &eval.Instances[idx]
		if err := enc.SetInstance(inst); err != nil {
			return err
		}
		pred := make([]int, inst.Len())
		if _, err := enc.Viterbi(pred); err != nil {
			return err
		}
		if err := ev.Accumulate(inst.Labels, pred); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "holdout: item_acc=%.4f inst_acc=%.4f macro_p=%.4f macro_r=%.4f macro_f1=%.4f\n",
		ev.ItemAccuracy(), ev.InstanceAccuracy(), ev.MacroPrecision(), ev.MacroRecall(), ev.MacroF1())
	return nil
}
