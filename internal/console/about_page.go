package console

// AboutPage is static; it only knows what to print.
type AboutPage struct {
	AppName string
	Version string
	BaseURL string
}

// NewAboutPage builds the about page.
func NewAboutPage(version, baseURL string) *AboutPage {
	return &AboutPage{
		AppName: "Catalog Admin Console",
		Version: version,
		BaseURL: baseURL,
	}
}
