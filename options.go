package mat73

// DefaultStrideThreshold is the Stage 5 payload-stride heuristic: when
// the number of candidate Time slots is at least this multiple of the
// timeseries count, Time and Data are assumed to alternate in MCOS;
// otherwise every candidate slot is treated as a Time slot. Exposed as
// an overridable constant since MCOS's layout is not documented and a
// caller who has inspected a particular file may know better.
const DefaultStrideThreshold = 1.5

// DefaultPairingWindow is the Stage 7 scan window: how many MCOS
// slots past a timeseries' Time slot are examined for its Data
// payload before giving up.
const DefaultPairingWindow = 19

// config holds optional configuration for Open, ReadVariable, and
// ListVariables.
type config struct {
	logger          Logger
	strideThreshold float64
	pairingWindow   int
}

// Option configures optional parameters for Open, ReadVariable, and
// ListVariables.
type Option func(*config)

// WithLogger supplies a Logger for progress and downgrade diagnostics.
//
// Default: a no-op logger.
//
// Example:
//
//	v, err := mat73.ReadVariable("data.mat", "sig",
//	    mat73.WithLogger(mat73.NewStdLogger(nil)))
func WithLogger(logger Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStrideThreshold overrides the Stage 5 stride-selection threshold
// (DefaultStrideThreshold). Files whose candidate-time-slot count sits
// near the default threshold may be mis-allocated; this lets a caller
// who has inspected such a file correct it explicitly rather than have
// the reconstructor silently guess.
//
// Default: DefaultStrideThreshold (1.5).
func WithStrideThreshold(threshold float64) Option {
	return func(c *config) {
		if threshold > 0 {
			c.strideThreshold = threshold
		}
	}
}

// WithPairingWindow overrides the Stage 7 Data-payload scan window
// (DefaultPairingWindow).
//
// Default: DefaultPairingWindow (19).
func WithPairingWindow(window int) Option {
	return func(c *config) {
		if window > 0 {
			c.pairingWindow = window
		}
	}
}

// defaultConfig returns configuration with default values.
func defaultConfig() *config {
	return &config{
		logger:          noopLogger{},
		strideThreshold: DefaultStrideThreshold,
		pairingWindow:   DefaultPairingWindow,
	}
}

// applyOptions applies Option functions to config.
func applyOptions(cfg *config, opts []Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}
