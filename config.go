package shape

type MatchConfig struct {
	// Transform makes the value returned by a predicate the result for its
	// property, instead of the matched source value.
	Transform bool

	// Workers bounds how many candidates Reduce matches concurrently. Values
	// below 2 match sequentially.
	Workers int

	// Bindings, if non-nil, receives the variable bindings of a successful
	// Match. Reduce ignores it.
	Bindings Bindings
}

type MatchOpt func(*MatchConfig)

func MatchTransform(v bool) MatchOpt {
	return func(c *MatchConfig) { c.Transform = v }
}

func MatchWorkers(n int) MatchOpt {
	return func(c *MatchConfig) { c.Workers = n }
}

func MatchBindings(dst Bindings) MatchOpt {
	return func(c *MatchConfig) { c.Bindings = dst }
}

func newConfig(opts []MatchOpt) *MatchConfig {
	cfg := &MatchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
