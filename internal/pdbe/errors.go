package pdbe

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPDBID     = errors.New("invalid PDB id")
	ErrInvalidAccession = errors.New("invalid UniProt accession")
	ErrNoIDs            = errors.New("no PDB ids given")
	ErrNoData           = errors.New("no data retrieved")
	ErrEmptyQuery       = errors.New("empty search query")
	ErrExternalAPI      = errors.New("PDBe API request failed")
)

// StatusError is returned when the API answers with anything but 200 OK.
type StatusError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("[No data retrieved - %d] %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrNoData) match any non-200 outcome.
func (e *StatusError) Is(target error) bool {
	return target == ErrNoData
}
