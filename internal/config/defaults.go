package config

// ApplyDefaults sets default values for any zero values in cfg. The Rank
// defaults mirror models.DefaultRankOptions().
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/akshara/data/db/rows.db"
	}
	if cfg.Storage.IndexPath == "" {
		cfg.Storage.IndexPath = "/usr/local/var/akshara/data/db/postings.db"
	}
	if cfg.Support.BleveIndexPath == "" {
		cfg.Support.BleveIndexPath = "/usr/local/var/akshara/data/indices/bleve"
	}

	if cfg.Rank.Scope == "" {
		cfg.Rank.Scope = "anywhere"
	}
	if cfg.Rank.PrefixLenStrict == 0 {
		cfg.Rank.PrefixLenStrict = 3
	}
	if cfg.Rank.PrefixLenExact == 0 {
		cfg.Rank.PrefixLenExact = 2
	}
	if cfg.Rank.PrefixLenLoose == 0 {
		cfg.Rank.PrefixLenLoose = 2
	}
	if cfg.Rank.MaxConPerWord == 0 {
		cfg.Rank.MaxConPerWord = 4
	}
	if cfg.Rank.MaxConTotal2W == 0 {
		cfg.Rank.MaxConTotal2W = 5
	}
	if cfg.Rank.MaxConTotal3PlusW == 0 {
		cfg.Rank.MaxConTotal3PlusW = 7
	}
	if cfg.Rank.PFMaxSubsFor2W == 0 {
		cfg.Rank.PFMaxSubsFor2W = 1
	}
	if cfg.Rank.PFMaxSubsFor3W == 0 {
		cfg.Rank.PFMaxSubsFor3W = 2
	}
	if cfg.Rank.PFMaxExtraSuffixPerWord == 0 {
		cfg.Rank.PFMaxExtraSuffixPerWord = 2
	}
	if cfg.Rank.PFGlobalExtraMultiplier == 0 {
		cfg.Rank.PFGlobalExtraMultiplier = 2
	}
	if cfg.Rank.AddFirstWordMaxAddInMulti == 0 {
		cfg.Rank.AddFirstWordMaxAddInMulti = 2
	}
	if cfg.Rank.DefaultLimit == 0 {
		cfg.Rank.DefaultLimit = 20
	}
	if cfg.Rank.MaxLimit == 0 {
		cfg.Rank.MaxLimit = 200
	}
}
