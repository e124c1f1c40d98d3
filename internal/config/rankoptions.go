package config

import "github.com/hyperjump/akshara/internal/models"

// ToRankOptions builds a models.RankOptions from the YAML-loaded RankConfig.
// The outsideCapsByQLen policy table is fixed by models.DefaultRankOptions
// and not exposed as a config knob.
func (r RankConfig) ToRankOptions() models.RankOptions {
	opts := models.DefaultRankOptions()
	opts.Scope = models.ParseScope(r.Scope)
	opts.ExactOnly = r.ExactOnly
	opts.PrefixLenStrict = r.PrefixLenStrict
	opts.PrefixLenExact = r.PrefixLenExact
	opts.PrefixLenLoose = r.PrefixLenLoose
	opts.MaxConPerWord = r.MaxConPerWord
	opts.MaxConTotal2W = r.MaxConTotal2W
	opts.MaxConTotal3PlusW = r.MaxConTotal3PlusW
	opts.PFMaxSubsFor2W = r.PFMaxSubsFor2W
	opts.PFMaxSubsFor3W = r.PFMaxSubsFor3W
	opts.PFMaxExtraSuffixPerWord = r.PFMaxExtraSuffixPerWord
	opts.PFGlobalExtraMultiplier = r.PFGlobalExtraMultiplier
	opts.AddFirstWordMaxAddInMulti = r.AddFirstWordMaxAddInMulti
	return opts
}
