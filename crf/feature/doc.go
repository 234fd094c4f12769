// Package feature builds the feature set and reference lists consumed by
// crf/encode from a crfdata.Dataset, following crf1d_feature.cpp's
// generation pass: transition features between consecutive gold labels,
// state features between observed attributes and the current label, and
// optional zero-frequency "possible" features that connect every
// attribute to every label and every label pair, so an encoder can assign
// them nonzero weight even if they never co-occur in training data.
package feature
