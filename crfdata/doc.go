// Package crfdata holds the in-memory training/tagging data model: items,
// instances, datasets, and the string<->id dictionaries used to translate
// attribute and label names into the dense integer space the core package
// operates on.
//
// crfdata has no dependency on crf/crfctx, crf/feature, crf/encode, or
// crf/model — it is consumed by them, not the other way around, matching
// the "external collaborator" framing of the data ingestion layer.
package crfdata
