package catalog

// Volume is one catalog search result or volume lookup.
type Volume struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	PageCount     int      `json:"page_count"`
	Categories    []string `json:"categories"`
	PublishedDate string   `json:"published_date"`
	Thumbnail     string   `json:"thumbnail"`
}

// volumeItem matches a single entry of the Google Books volumes API.
type volumeItem struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		PageCount     int      `json:"pageCount"`
		Categories    []string `json:"categories"`
		PublishedDate string   `json:"publishedDate"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

// searchResponse matches GET /volumes?q=.
type searchResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

func (item volumeItem) toVolume() Volume {
	info := item.VolumeInfo
	authors := info.Authors
	if authors == nil {
		authors = []string{}
	}
	categories := info.Categories
	if categories == nil {
		categories = []string{}
	}
	return Volume{
		ID:            item.ID,
		Title:         info.Title,
		Authors:       authors,
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    categories,
		PublishedDate: info.PublishedDate,
		Thumbnail:     info.ImageLinks.Thumbnail,
	}
}
