// Package crfio implements the external, human-editable item-file
// grammar used by the training and tagging frontends, following
// frontend/reader.cpp's tab/whitespace reader and frontend/tag.cpp's
// output formatter. Blank lines separate instances; within an instance,
// each line is one item: the first field is the gold label (or an
// "@weight <float>" declaration applying to the whole instance), and
// every subsequent field is an "attr" or "attr:value" pair (missing
// value defaults to 1.0).
package crfio
