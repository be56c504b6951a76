package scraper

// PostDetail normalized result of the single post endpoint
type PostDetail struct {
	Likes       *int64
	Comments    *int64
	Shares      *int64
	Date        string
	Hour        string
	Description string
	Media       []Media
	TopComments []Comment
}

type Media struct {
	ImageURL  string
	Thumbnail string
}

type Comment struct {
	Username string
	Text     string
	Likes    int64
}

// Images picks image_url, falling back to thumbnail, skipping entries with neither
func (d *PostDetail) Images() []string {
	images := make([]string, 0, len(d.Media))
	for _, m := range d.Media {
		switch {
		case m.ImageURL != "":
			images = append(images, m.ImageURL)
		case m.Thumbnail != "":
			images = append(images, m.Thumbnail)
		}
	}
	return images
}
