package model

import "strings"

// VisitAddress is where the contract signing visit takes place. It is only
// used to build the handoff message and is never stored.
type VisitAddress struct {
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Zip          string `json:"zip"`
	Street       string `json:"street"`
	Number       string `json:"number"`
}

// MissingFields lists the names of blank fields.
func (a VisitAddress) MissingFields() []string {
	return blank(map[string]string{
		"city":         a.City,
		"neighborhood": a.Neighborhood,
		"zip":          a.Zip,
		"street":       a.Street,
		"number":       a.Number,
	}, []string{"city", "neighborhood", "zip", "street", "number"})
}

// TeamApplication is a candidate asking to join the crew.
type TeamApplication struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	PixKey       string `json:"pixKey"`
}

func blank(values map[string]string, order []string) []string {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
