package pages

// a navigation entry with its title in the request language
type NavEntry struct {
	Page     string `json:"page"`
	Title    string `json:"title"`
	TitleKey string `json:"title_key"`
	URL      string `json:"url"`
}

type NavigationResponse struct {
	Language   string     `json:"language"`
	Current    string     `json:"current,omitempty"`
	Navigation []NavEntry `json:"navigation"`
}
