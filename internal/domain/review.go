package domain

// Review is one row of the reviews dataset. Text fields keep their raw
// values as read from the CSV; consumers trim where comparison requires it.
type Review struct {
	Park      string `json:"Branch"`
	Rating    int    `json:"Rating"`
	Location  string `json:"Reviewer_Location"`
	YearMonth string `json:"Year_Month"`
}

// Positive reports whether the review counts as positive (rating >= 4 on
// the 1-5 scale).
func (r Review) Positive() bool { return r.Rating >= 4 }
