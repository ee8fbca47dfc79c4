package pipeline

import "github.com/hyperjump/keiyaku/internal/models"

// requiredCategories lists, per contract type, the clause categories whose
// absence is reported as a compliance gap. Declaration order is report order.
var requiredCategories = map[string][]models.Category{
	"Employment": {
		models.CategoryTermination,
		models.CategoryConfidentiality,
		models.CategoryPayment,
		models.CategoryNotice,
		models.CategoryGoverningLaw,
	},
	"NDA": {
		models.CategoryConfidentiality,
		models.CategoryTermination,
		models.CategoryGoverningLaw,
	},
	"Service": {
		models.CategoryPayment,
		models.CategoryLiability,
		models.CategoryConfidentiality,
		models.CategoryTermination,
		models.CategoryGoverningLaw,
		models.CategoryNotice,
	},
	"Vendor": {
		models.CategoryPayment,
		models.CategoryLiability,
		models.CategoryIntellectualProperty,
		models.CategoryTermination,
		models.CategoryGoverningLaw,
	},
	"Lease": {
		models.CategoryPayment,
		models.CategoryTermination,
		models.CategoryLiability,
		models.CategoryGoverningLaw,
	},
}

// contractTypeOrder fixes the order ContractTypes returns.
var contractTypeOrder = []string{"Employment", "NDA", "Service", "Vendor", "Lease"}

// ContractTypes returns the known contract types in display order.
func ContractTypes() []string {
	out := make([]string, len(contractTypeOrder))
	copy(out, contractTypeOrder)
	return out
}

// RequiredFor returns the required categories for a contract type, nil when the
// type is unknown (unknown types simply have nothing to miss).
func RequiredFor(contractType string) []models.Category {
	return requiredCategories[contractType]
}

// MissingCategories returns the required categories for contractType that do
// not appear in found, preserving the required list's declared order.
func MissingCategories(contractType string, found map[models.Category]bool) []models.Category {
	required := RequiredFor(contractType)
	missing := make([]models.Category, 0, len(required))
	for _, c := range required {
		if !found[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
