package models

// BlogPost is one entry in the generated index. The date is kept as the
// free-form string found in the source document; nothing downstream may
// assume it parses as a calendar date.
type BlogPost struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	ReadTime string   `json:"readTime"`
	Author   string   `json:"author"`
	Path     string   `json:"path"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BlogIndex is the persisted artifact. Posts are sorted newest first,
// categories and tags by descending count. Readers must ignore fields
// they do not recognize.
type BlogIndex struct {
	Posts      []BlogPost      `json:"posts"`
	Categories []CategoryCount `json:"categories"`
	Tags       []TagCount      `json:"tags"`
}
