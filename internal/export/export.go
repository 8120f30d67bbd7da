// Package export serializes the active identity's collections for download.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
)

const (
	JSONFilename = "bond_keeper_data.json"
	XLSXFilename = "bond_keeper_data.xlsx"
)

// Source is satisfied by *relationship.Store.
type Source interface {
	Contacts() []relationship.Contact
	ImportantDates() []relationship.ImportantDate
	Surveys() []relationship.Survey
}

type Document struct {
	Contacts       []relationship.Contact       `json:"contacts"`
	ImportantDates []relationship.ImportantDate `json:"importantDates"`
	Surveys        []relationship.Survey        `json:"surveys"`
}

func Build(src Source) Document {
	return Document{
		Contacts:       src.Contacts(),
		ImportantDates: src.ImportantDates(),
		Surveys:        src.Surveys(),
	}
}

func JSON(doc Document) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return b, nil
}
