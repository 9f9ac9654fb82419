package importer

// MissingRequired returns the keys of required definitions that no mapping
// entry currently targets, in definition order.
func MissingRequired(defs []ColumnDefinition, mapping []ColumnMapping) []string {
	mapped := make(map[string]bool, len(mapping))
	for _, m := range mapping {
		if m.TargetKey != "" {
			mapped[m.TargetKey] = true
		}
	}

	var missing []string
	for _, def := range defs {
		if def.Required && !mapped[def.Key] {
			missing = append(missing, def.Key)
		}
	}
	return missing
}

// MissingRequiredLabels returns the display labels for MissingRequired.
// User-facing messages report labels, never raw keys.
func MissingRequiredLabels(defs []ColumnDefinition, mapping []ColumnMapping) []string {
	missing := MissingRequired(defs, mapping)
	if len(missing) == 0 {
		return nil
	}

	labels := make([]string, 0, len(missing))
	for _, key := range missing {
		for _, def := range defs {
			if def.Key == key {
				labels = append(labels, def.Label)
				break
			}
		}
	}
	return labels
}
