package domain

// Properties have no entity of their own; they are the distinct listingName
// values of the review collection.

type PropertySummary struct {
	Name            string  `json:"name"`
	TotalReviews    int     `json:"totalReviews"`
	ApprovedReviews int     `json:"approvedReviews"`
	PendingReviews  int     `json:"pendingReviews"`
	DeniedReviews   int     `json:"deniedReviews"`
	AverageRating   float64 `json:"averageRating"` // approved reviews only
}

type PropertyDetail struct {
	Name            string        `json:"name"`
	AverageRating   float64       `json:"averageRating"`
	TotalReviews    int           `json:"totalReviews"`
	RatingBreakdown []RatingCount `json:"ratingBreakdown"`
	Reviews         []Review      `json:"reviews"`
}
