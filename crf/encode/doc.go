// Package encode mediates between a generic optimizer loop and the
// inference core in crf/crfctx, following crf1d_encode.cpp's tag_encoder:
// a monotonically increasing cache level (NONE -> WEIGHT -> INSTANCE ->
// ALPHABETA -> MARGINAL) lets each setter replay only the stages an
// optimizer actually needs, so a perceptron-style trainer never pays for
// forward-backward and a batch L-BFGS trainer never recomputes stages it
// already has.
package encode
