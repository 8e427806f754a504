package pages

import (
	"net/url"
	"strings"
)

const (
	Dashboard        = "Dashboard"
	DiseaseDetection = "DiseaseDetection"
	CropManagement   = "CropManagement"
	ExpertTips       = "ExpertTips"
	Weather          = "Weather"
	Community        = "Community"
	Chat             = "Chat"
)

// the page the app opens on when a path names none
const DefaultPage = "dashboard"

var paths = map[string]string{
	Dashboard:        "/dashboard",
	DiseaseDetection: "/disease-detection",
	CropManagement:   "/crop-management",
	ExpertTips:       "/expert-tips",
	Weather:          "/weather",
	Community:        "/community",
	Chat:             "/chat",
}

// one entry of the app's main navigation
type NavItem struct {
	Page     string `json:"page"`
	TitleKey string `json:"title_key"`
	URL      string `json:"url"`
}

// navigation in display order; TitleKey is an i18n key
var navigation = []struct {
	page     string
	titleKey string
}{
	{Dashboard, "dashboard"},
	{DiseaseDetection, "diseaseDetection"},
	{CropManagement, "myCrops"},
	{ExpertTips, "expertTips"},
	{Weather, "weather"},
	{Chat, "chatAssistant"},
	{Community, "community"},
}

// maps a logical page name to its path; unknown names map to
// "/<lowercased name>" and params become an encoded query string
func URL(page string, params url.Values) string {
	base, ok := paths[page]
	if !ok {
		base = "/" + strings.ToLower(page)
	}

	if query := params.Encode(); query != "" {
		return base + "?" + query
	}

	return base
}

// returns the first path segment, or DefaultPage when there is none
func FromPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[1] == "" {
		return DefaultPage
	}

	return parts[1]
}

// the main navigation with resolved URLs
func Navigation() []NavItem {
	items := make([]NavItem, len(navigation))
	for i, n := range navigation {
		items[i] = NavItem{Page: n.page, TitleKey: n.titleKey, URL: URL(n.page, nil)}
	}

	return items
}
