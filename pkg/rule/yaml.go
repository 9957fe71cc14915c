package rule

// yamlPair is one open/close entry. The same struct decodes TOML.
type yamlPair struct {
	Open  string `yaml:"open" toml:"open"`
	Close string `yaml:"close" toml:"close"`
}

// yamlPairSet is the intermediate struct for parsing pair set definitions.
type yamlPairSet struct {
	ID          string     `yaml:"id" toml:"id"`
	Name        string     `yaml:"name" toml:"name"`
	Description string     `yaml:"description,omitempty" toml:"description"`
	Escape      string     `yaml:"escape,omitempty" toml:"escape"`
	Pairs       []yamlPair `yaml:"pairs" toml:"pairs"`
}

// yamlPairSetsFile is the top-level structure of a pair set file.
type yamlPairSetsFile struct {
	PairSets []yamlPairSet `yaml:"pair_sets" toml:"pair_sets"`
}
