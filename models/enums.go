package models

import "strings"

// ParseServiceType maps a raw token to a ServiceType. Unknown or empty
// tokens map to ServiceGeneral so upstream data drift never rejects a
// request.
func ParseServiceType(s string) ServiceType {
	switch ServiceType(strings.ToLower(strings.TrimSpace(s))) {
	case ServiceConsultation:
		return ServiceConsultation
	case ServiceLaboratory:
		return ServiceLaboratory
	case ServicePharmacy:
		return ServicePharmacy
	case ServiceRadiology:
		return ServiceRadiology
	case ServiceBilling:
		return ServiceBilling
	case ServiceGeneral:
		return ServiceGeneral
	default:
		return ServiceGeneral
	}
}

// ParsePriorityClass maps a raw token to a PriorityClass. Unknown or empty
// tokens fail soft to PriorityNormal.
func ParsePriorityClass(s string) PriorityClass {
	switch PriorityClass(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityEmergency:
		return PriorityEmergency
	case PriorityHigh:
		return PriorityHigh
	case PriorityVIP:
		return PriorityVIP
	case PriorityPregnant:
		return PriorityPregnant
	case PriorityDisabled:
		return PriorityDisabled
	case PrioritySeniorCitizen:
		return PrioritySeniorCitizen
	case PriorityChild:
		return PriorityChild
	case PriorityNormal:
		return PriorityNormal
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityNormal
	}
}
