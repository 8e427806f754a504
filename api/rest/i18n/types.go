package i18n

type LanguagesResponse struct {
	Default   string   `json:"default"`
	Languages []string `json:"languages"`
}

type MessagesResponse struct {
	Language string            `json:"language"`
	Messages map[string]string `json:"messages"`
}
