// Package crfeval accumulates per-label precision/recall/F1 and item/
// instance accuracy across tagged instances, following the counters
// holdout.cpp's holdout_evaluation reports (macro-average precision,
// recall, F1, item accuracy, instance accuracy).
package crfeval
