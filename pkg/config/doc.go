// Package config loads the optional brander configuration file.
//
// A config file holds the same options the brand and check commands take as
// flags; flags that are set win over the file. The decoder is picked by
// extension (.yaml, .yml, .json, .hcl). A bare .brander file is tried as
// YAML first and then as HCL. Unknown fields are rejected in every format,
// and a relative root is resolved against the config file's directory.
//
// Example YAML:
//
//	root: .
//	from_boilerplate: .github/boilerplate.txt
//	files:
//	  - "**/*.go"
//	exclude:
//	  - "vendor/**"
//	insert_at_the_top: true
//
// Example HCL:
//
//	from_boilerplate = ".github/boilerplate.txt"
//	files            = ["**/*.go"]
//	skip_when_has    = "Copyright \\d{4}"
//
// ⚠️ skip_when_has is a regular expression and is not checked here. A bad
// pattern is reported when the run starts.
package config
