// Package crftrain implements the two optimizers crfsuite_train.cpp's
// trainer registry enumerates that this module carries: SGD with L2
// regularization, driven by crf/encode's batch objective/gradient
// contract, and averaged perceptron, driven by the Viterbi/INSTANCE-level
// contract. Both log per-epoch progress through their Logger callback
// (a klog sink when none is given) and tag each run
// with a uuid so concurrent training runs are distinguishable in a shared
// log stream.
package crftrain
