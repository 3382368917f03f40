package pricing

import "github.com/albinolog/contracts/internal/model"

// CatalogEntry prices one service. UnitPrice is in centavos; for the daily
// crew it is per collaborator per business day.
type CatalogEntry struct {
	ID        model.ServiceID
	Label     string
	UnitPrice int64
}

var catalog = []CatalogEntry{
	{ID: model.ServiceLoad, Label: "Carga", UnitPrice: 600_00},
	{ID: model.ServiceUnload, Label: "Descarga", UnitPrice: 550_00},
	{ID: model.ServiceTransfer, Label: "Transbordo", UnitPrice: 650_00},
	{ID: model.ServiceDailyCrew, Label: "Diária", UnitPrice: 220_00},
}

// Catalog returns the service catalog in display order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(id model.ServiceID) (CatalogEntry, bool) {
	for _, entry := range catalog {
		if entry.ID == id {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}
