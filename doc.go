// Package lcrf is the root of a first-order linear-chain Conditional
// Random Field (CRF) inference and training engine.
//
// What & Why:
//
//	A CRF assigns a discrete label to each position of a sequence of
//	sparsely-featured items by scoring whole label paths with a sum of
//	state features (attribute × label) and transition features
//	(label × label), then normalizing over all paths with the
//	forward-backward algorithm. This module implements exactly that
//	dynamic-programming core, nothing more: no CLI, no input format, no
//	optimizer. Those live in sibling packages and consume the core only
//	through the interfaces it exports.
//
// Package layout:
//
//	crf/crfctx/   per-instance forward/backward/Viterbi/marginal context
//	crf/feature/  feature generation and reference-list indexing
//	crf/encode/   level-cached glue between an optimizer and the context
//	crf/model/    binary model container (writer + reader)
//	crfdata/      dataset, instance, item, string dictionary
//	crfio/        tab/whitespace item-file reader and tagging-output writer
//	crftrain/     SGD-L2 and averaged-perceptron optimizers
//	crfeval/      precision/recall/F1 accumulator
//	cmd/crfsuite/ thin cobra CLI tying the above together
//
// Package lcrf itself (the repository root) holds the numeric kernels used
// by crfctx (in-place vector operations on dense float64 rows) and the
// LogFunc logging/cancellation callback shared by feature, encode, and
// crftrain.
package lcrf
