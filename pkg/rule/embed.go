package rule

import "embed"

// builtinPairsFS embeds the built-in pair set definitions.
//
//go:embed pairs/*.yml
var builtinPairsFS embed.FS
