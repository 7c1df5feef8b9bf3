package history

// Default configuration values.
const (
	DefaultMaxEntries          = 200
	DefaultCompactionThreshold = 50
	DefaultRetainFraction      = 0.5
	DefaultCheckpointInterval  = 25
)

// config holds the log's tuning knobs.
type config struct {
	// maxEntries is the target log length after compaction completes.
	maxEntries int

	// compactionThreshold is the slack above maxEntries that triggers
	// compaction.
	compactionThreshold int

	// retainFraction is the fraction of maxEntries kept as surviving
	// entries post-compaction.
	retainFraction float64

	// checkpointInterval forces a checkpoint every N deltas, bounding
	// reconstruction cost. 0 disables interval checkpoints.
	checkpointInterval int
}

func defaultConfig() config {
	return config{
		maxEntries:          DefaultMaxEntries,
		compactionThreshold: DefaultCompactionThreshold,
		retainFraction:      DefaultRetainFraction,
		checkpointInterval:  DefaultCheckpointInterval,
	}
}

// Option configures a Log during creation.
type Option func(*config)

// WithMaxEntries sets the target log length after compaction.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithCompactionThreshold sets how far past maxEntries the log may grow
// before compaction runs.
func WithCompactionThreshold(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.compactionThreshold = n
		}
	}
}

// WithRetainFraction sets the fraction of maxEntries that survives
// compaction. Values outside (0, 1] are ignored.
func WithRetainFraction(f float64) Option {
	return func(c *config) {
		if f > 0 && f <= 1 {
			c.retainFraction = f
		}
	}
}

// WithCheckpointInterval forces a checkpoint every n deltas.
// 0 disables interval checkpoints.
func WithCheckpointInterval(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.checkpointInterval = n
		}
	}
}
