package encode

// Level is the encoder's monotone cache level: each value's prerequisites
// are a strict superset of the one before it.
type Level uint8

const (
	// LevelNone means no cached state: the encoder was just built and
	// SetWeights has not been called yet.
	LevelNone Level = iota
	// LevelWeight means trans is filled from w (SetWeights).
	LevelWeight
	// LevelInstance means state is filled for the current instance
	// (SetInstance).
	LevelInstance
	// LevelAlphaBeta means forward/backward has run (PartitionFactor).
	LevelAlphaBeta
	// LevelMarginal means mexp_state/mexp_trans are populated
	// (ObjectiveAndGradients).
	LevelMarginal
)

// String names a Level for logging.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelWeight:
		return "WEIGHT"
	case LevelInstance:
		return "INSTANCE"
	case LevelAlphaBeta:
		return "ALPHABETA"
	case LevelMarginal:
		return "MARGINAL"
	default:
		return "UNKNOWN"
	}
}

// FeatureVisitor receives one (fid, value) pair fired along a path, in
// the order (t=0 state), (t=1 transition from t-1), (t=1 state), ...,
// matching FeaturesOnPath's documented enumeration order.
type FeatureVisitor func(fid int, value float64)
