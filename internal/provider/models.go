package provider

// ModelType represents a standard data model type. Each ModelType maps to a
// specific data structure in pkg/models/.
type ModelType string

// --- Earnings ---
const (
	// ModelEarningsSummary yields *models.EarningsSummary: the candidate
	// timestamp fields and display name from a provider's quote summary.
	ModelEarningsSummary ModelType = "EarningsSummary"

	// ModelEarningsCalendar yields *models.EarningsCalendar: the forward
	// announcement window plus analyst estimates.
	ModelEarningsCalendar ModelType = "EarningsCalendar"

	// ModelEarningsHistory yields []models.EarningsEvent, most recent first.
	ModelEarningsHistory ModelType = "EarningsHistory"
)

// --- News ---
const (
	// ModelCompanyNews yields []models.NewsArticle for one symbol.
	ModelCompanyNews ModelType = "CompanyNews"
)

// AllModels returns every standard model type.
func AllModels() []ModelType {
	return []ModelType{
		ModelEarningsSummary,
		ModelEarningsCalendar,
		ModelEarningsHistory,
		ModelCompanyNews,
	}
}

// ModelCategory returns the human-readable category for a model type.
func ModelCategory(m ModelType) string {
	switch m {
	case ModelEarningsSummary, ModelEarningsCalendar, ModelEarningsHistory:
		return "Earnings"
	case ModelCompanyNews:
		return "News"
	default:
		return "Unknown"
	}
}
