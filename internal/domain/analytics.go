package domain

type RatingCount struct {
	Rating     int     `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MonthBucket struct {
	Month   string  `json:"month"`
	Year    int     `json:"year"`
	Reviews int     `json:"reviews"`
	Rating  float64 `json:"rating"`
}

type PropertyPerformance struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
	Trend   int     `json:"trend"`
}

type AttentionItem struct {
	Name    string   `json:"name"`
	Rating  float64  `json:"rating"`
	Reviews int      `json:"reviews"`
	Issues  []string `json:"issues"`
}

type Analytics struct {
	Window              string                `json:"window"`
	TotalReviews        int                   `json:"totalReviews"`
	AverageRating       float64               `json:"averageRating"`
	ApprovalRate        float64               `json:"approvalRate"`
	MonthlyGrowth       float64               `json:"monthlyGrowth"`
	RatingDistribution  []RatingCount         `json:"ratingDistribution"`
	PropertyPerformance []PropertyPerformance `json:"propertyPerformance"`
	MonthlyTrends       []MonthBucket         `json:"monthlyTrends"`
	TopPerformers       []PropertyPerformance `json:"topPerformers"`
	NeedsAttention      []AttentionItem       `json:"needsAttention"`
}
