package dto

type DashboardResponse struct {
	NoteCount      int64            `json:"note_count"`
	TotalDownloads int64            `json:"total_downloads"`
	ReviewCount    int64            `json:"review_count"`
	DoubtCount     int64            `json:"doubt_count"`
	FavoriteCount  int64            `json:"favorite_count"`
	RecentNotes    []NoteResponse   `json:"recent_notes"`
	RecentReviews  []ReviewResponse `json:"recent_reviews"`
}
