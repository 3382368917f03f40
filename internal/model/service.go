package model

import "strings"

type ServiceID string

const (
	ServiceLoad      ServiceID = "carga"
	ServiceUnload    ServiceID = "descarga"
	ServiceTransfer  ServiceID = "transbordo"
	ServiceDailyCrew ServiceID = "diaria"
)

func ParseServiceID(raw string) (ServiceID, bool) {
	switch ServiceID(strings.ToLower(strings.TrimSpace(raw))) {
	case ServiceLoad:
		return ServiceLoad, true
	case ServiceUnload:
		return ServiceUnload, true
	case ServiceTransfer:
		return ServiceTransfer, true
	case ServiceDailyCrew:
		return ServiceDailyCrew, true
	default:
		return "", false
	}
}

// ServiceSelection is one chosen service. For ServiceDailyCrew the quantity
// is the number of collaborators.
type ServiceSelection struct {
	Service  ServiceID `json:"service"`
	Quantity int       `json:"quantity"`
}
