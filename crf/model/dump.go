package model

import (
	"fmt"
	"io"
)

// Dump writes a human-readable listing of the model's header, labels,
// attributes, and features to w, for the crfsuite-style "dump" CLI
// subcommand and for debugging malformed models.
func (r *Reader) Dump(w io.Writer) error {
	fmt.Fprintf(w, "FILEHEADER\n")
	fmt.Fprintf(w, "  size: %d\n", r.hdr.totalSize)
	fmt.Fprintf(w, "  type: %s\n", modelType)
	fmt.Fprintf(w, "  version: %d\n", version)
	fmt.Fprintf(w, "  num_features: %d\n", r.hdr.numFeatures)
	fmt.Fprintf(w, "  num_labels: %d\n", r.hdr.numLabels)
	fmt.Fprintf(w, "  num_attrs: %d\n", r.hdr.numAttrs)

	fmt.Fprintf(w, "LABELS\n")
	for i, name := range r.Labels.Names() {
		fmt.Fprintf(w, "  %5d  %s\n", i, name)
	}

	fmt.Fprintf(w, "ATTRIBUTES\n")
	for i, name := range r.Attrs.Names() {
		fmt.Fprintf(w, "  %5d  %s\n", i, name)
	}

	fmt.Fprintf(w, "FEATURES\n")
	for fid := 0; fid < r.NumFeatures(); fid++ {
		f, err := r.Feature(fid)
		if err != nil {
			return err
		}
		kind := "State"
		if f.Kind != 0 {
			kind = "Transition"
		}
		fmt.Fprintf(w, "  %5d  %-10s (%d, %d) = %g\n", fid, kind, f.Src, f.Dst, f.Freq)
	}
	return nil
}
