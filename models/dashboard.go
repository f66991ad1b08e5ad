package models

// DashboardSummary is the admin metrics view.
type DashboardSummary struct {
	TotalFeedback      int64              `json:"total_feedback"`
	OpenItems          int64              `json:"open_items"`
	AvgResolutionHours float64            `json:"avg_resolution_hours"`
	CategoryBreakdown  map[Category]int64 `json:"category_breakdown"`
}
