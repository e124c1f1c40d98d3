package models

// RankOptions is the enumerated set of options spec §6 says the core
// consumes. Defaults match the spec's stated defaults.
type RankOptions struct {
	Scope     Scope
	ExactOnly bool

	PrefixLenStrict int
	PrefixLenExact  int
	PrefixLenLoose  int

	MaxConPerWord      int
	MaxConTotal2W      int
	MaxConTotal3PlusW  int

	PFMaxSubsFor2W          int
	PFMaxSubsFor3W          int
	PFMaxExtraSuffixPerWord int
	PFGlobalExtraMultiplier int

	AddFirstWordMaxAddInMulti int

	// OutsideCapsByQLen maps a query-word entity length to the maximum
	// number of "outside" substitutions ADD/OUTSIDE tolerates for that
	// word: 0 for len<=2, 1 for len==3, 2 for len in [4,8], 3 for len>=9.
	OutsideCapsByQLen func(qEntLen int) int
}

// DefaultRankOptions returns the spec-mandated defaults.
func DefaultRankOptions() RankOptions {
	return RankOptions{
		Scope:                     ScopeAnywhere,
		ExactOnly:                 false,
		PrefixLenStrict:           3,
		PrefixLenExact:            2,
		PrefixLenLoose:            2,
		MaxConPerWord:             4,
		MaxConTotal2W:             5,
		MaxConTotal3PlusW:         7,
		PFMaxSubsFor2W:            1,
		PFMaxSubsFor3W:            2,
		PFMaxExtraSuffixPerWord:   2,
		PFGlobalExtraMultiplier:   2,
		AddFirstWordMaxAddInMulti: 2,
		OutsideCapsByQLen:         defaultOutsideCap,
	}
}

func defaultOutsideCap(qEntLen int) int {
	switch {
	case qEntLen <= 2:
		return 0
	case qEntLen == 3:
		return 1
	case qEntLen <= 8:
		return 2
	default:
		return 3
	}
}
