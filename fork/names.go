package fork

import "strings"

// canonical fork names as used by the beacon API `version` field.
var forkNames = []string{"altair", "bellatrix", "capella", "deneb", "electra"}

// specsByIndex mirrors forkNames.
var specsByIndex = []ForkSpec{
	AltairForkSpec,
	BellatrixForkSpec,
	CapellaForkSpec,
	DenebForkSpec,
	ElectraForkSpec,
}

// IndexByName resolves a beacon API fork name to its table position.
func IndexByName(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range forkNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// NameByIndex returns the canonical name for a table position.
func NameByIndex(index int) (string, bool) {
	if index < 0 || index >= len(forkNames) {
		return "", false
	}
	return forkNames[index], true
}

// SpecByIndex returns the well-known gindex set for a table position.
func SpecByIndex(index int) (ForkSpec, bool) {
	if index < 0 || index >= len(specsByIndex) {
		return ForkSpec{}, false
	}
	return specsByIndex[index], true
}
