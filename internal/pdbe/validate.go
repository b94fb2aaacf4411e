package pdbe

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Whole-string match: a PDB code is exactly four characters, so "1cbs1" is rejected.
	pdbIDPattern     = regexp.MustCompile(`^[0-9][A-Za-z][A-Za-z0-9]{2}$`)
	accessionPattern = regexp.MustCompile(`^[A-Za-z0-9]+(-[0-9]+)?$`)
)

// IsValidPDBID reports whether id looks like a 4-character PDB code:
// a digit, a letter, then two alphanumerics.
func IsValidPDBID(id string) bool {
	return pdbIDPattern.MatchString(id)
}

// ValidatePDBID returns ErrInvalidPDBID for ids that cannot be PDB codes.
func ValidatePDBID(id string) error {
	if !IsValidPDBID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidPDBID, id)
	}
	return nil
}

// NormalizeID lower-cases a valid PDB id. The API keys its responses by lower-case id.
func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if err := ValidatePDBID(id); err != nil {
		return "", err
	}
	return strings.ToLower(id), nil
}

// UniqueValidIDs keeps the valid ids of ids in order, dropping duplicates.
// The rejected inputs are returned separately.
func UniqueValidIDs(ids []string) (valid, rejected []string) {
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id, err := NormalizeID(raw)
		if err != nil {
			rejected = append(rejected, raw)
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		valid = append(valid, id)
	}
	return valid, rejected
}

// NormalizeAccession upper-cases a valid UniProt accession. The graph API keys
// its responses by the canonical upper-case accession.
func NormalizeAccession(acc string) (string, error) {
	acc = strings.ToUpper(strings.TrimSpace(acc))
	if err := validateAccession(acc); err != nil {
		return "", err
	}
	return acc, nil
}

func validateAccession(acc string) error {
	if !accessionPattern.MatchString(acc) {
		return fmt.Errorf("%w: %q", ErrInvalidAccession, acc)
	}
	return nil
}
