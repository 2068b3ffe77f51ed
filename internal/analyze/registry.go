package analyze

// DefaultRules returns the built-in rule set in a stable order.
func DefaultRules() []Rule {
	return []Rule{
		NoForEach{},
		NoShoutyConstants{},
	}
}

// RuleNames returns the public identifiers of the built-in rules.
func RuleNames() []string {
	rules := DefaultRules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name()
	}
	return names
}
