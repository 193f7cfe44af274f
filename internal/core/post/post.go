package post

// Post is a persisted post. ID is assigned by the store on creation and never
// changes afterwards; only the repository produces values of this type.
type Post struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewPost is the creation payload. It has no ID: the store assigns one.
type NewPost struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
