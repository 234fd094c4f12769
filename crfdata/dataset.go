package crfdata

// Dataset is an ordered collection of instances plus the attribute and
// label dictionaries shared by every instance in it.
type Dataset struct {
	Instances []Instance
	Labels    *Dict
	Attrs     *Dict
}

// NewDataset returns an empty dataset backed by fresh label and attribute
// dictionaries.
func NewDataset() *Dataset {
	return &Dataset{Labels: NewDict(), Attrs: NewDict()}
}

// Append adds inst to the dataset after validating it.
func (ds *Dataset) Append(inst Instance) error {
	if err := inst.Validate(); err != nil {
		return err
	}
	ds.Instances = append(ds.Instances, inst)
	return nil
}

// Len returns the number of instances in the dataset.
func (ds *Dataset) Len() int { return len(ds.Instances) }

// Get returns the i-th instance.
func (ds *Dataset) Get(i int) Instance { return ds.Instances[i] }

// NumLabels returns L, the size of the label dictionary.
func (ds *Dataset) NumLabels() int { return ds.Labels.Len() }

// NumAttributes returns A, the size of the attribute dictionary.
func (ds *Dataset) NumAttributes() int { return ds.Attrs.Len() }

// MaxLength returns the length of the longest instance, the size the
// inference context must be resized to before processing this dataset.
// Returns 0 for an empty dataset.
func (ds *Dataset) MaxLength() int {
	max := 0
	for _, inst := range ds.Instances {
		if n := inst.Len(); n > max {
			max = n
		}
	}
	return max
}

// Split partitions the dataset by GroupID: instances whose GroupID equals
// holdoutGroup go to holdout, all others go to train. Both results share
// this dataset's dictionaries. Split is the group-tag-driven train/holdout
// assignment described for the external dataset splitter.
func (ds *Dataset) Split(holdoutGroup int) (train, holdout *Dataset) {
	train = &Dataset{Labels: ds.Labels, Attrs: ds.Attrs}
	holdout = &Dataset{Labels: ds.Labels, Attrs: ds.Attrs}
	for _, inst := range ds.Instances {
		if inst.GroupID == holdoutGroup {
			holdout.Instances = append(holdout.Instances, inst)
		} else {
			train.Instances = append(train.Instances, inst)
		}
	}
	return train, holdout
}
