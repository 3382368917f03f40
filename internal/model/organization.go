package model

// Party identifies one side of the service contract.
type Party struct {
	Name            string
	TaxID           string
	ResponsibleName string
	Location        string
}

// Provider is the fixed contracted party printed into every contract.
var Provider = Party{
	Name:     "Albino Logistics",
	TaxID:    "12.345.678/0001-99",
	Location: "Santa Catarina",
}
