package encode

import (
	"os"
	"time"

	"k8s.io/klog/v2"

	lcrf "github.com/katalvlaran/lcrf"
	"github.com/katalvlaran/lcrf/crf/model"
	"github.com/katalvlaran/lcrf/crfdata"
)

// SaveModel writes w, the encoder's feature set, and labels/attrs to path
// using crf/model's binary container format. logger reports completion
// timing; a nil logger defaults to a klog sink.
func (e *Encoder) SaveModel(path string, w []float64, labels, attrs *crfdata.Dict, logger lcrf.LogFunc) error {
	if len(w) != e.feats.NumFeatures() {
		return ErrWeightVectorSize
	}

	start := time.Now()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := model.Write(f, w, e.feats, labels, attrs); err != nil {
		return err
	}

	lcrf.OrDefault(logger, klog.Level(1))("encode: save_model wrote %q (%d features) in %s", path, e.feats.NumFeatures(), time.Since(start))
	return nil
}
