package domain

// Restaurant is a venue listed by a restaurateur. Inactive restaurants are
// hidden from reads and hide their blogs from the blog list.
type Restaurant struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Restaurateur string `json:"restaurateur"`
	CoverImage   string `json:"coverImage"`
	IsActive     bool   `json:"isActive"`
}
