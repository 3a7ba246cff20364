package scripting

// aliases maps legacy command spellings to their canonical names. Lookup is
// deliberately case-sensitive: the legacy names are honored exactly as they
// were documented, not as a general case-folding scheme.
var aliases = map[string]string{
	`L_click`:   `click`,
	`R_click`:   `rclick`,
	`D_click`:   `dclick`,
	`put`:       `hover`,
	`jump`:      `goto`,
	`delay`:     `sleep`,
	`pause`:     `pause`,
	`keep_open`: `keep_open`,
}

// ResolveAlias returns the canonical name for a legacy command name, or the
// name unchanged if no alias entry exists.
func ResolveAlias(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}

	return name
}
