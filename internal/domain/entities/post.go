package entities

import "time"

// Post is one search result from the content source.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Score       int       `json:"score"`
	CreatedUTC  time.Time `json:"created_utc"`
	NumComments int       `json:"num_comments"`
	Selftext    string    `json:"selftext"`
	Subreddit   string    `json:"subreddit"`
}

// Comment is one comment in a fully expanded thread.
type Comment struct {
	Body       string    `json:"body"`
	Score      int       `json:"score"`
	Author     string    `json:"author"`
	CreatedUTC time.Time `json:"created_utc"`
}

// Thread is a post enriched with its full body text and every comment,
// "load more" stubs already expanded.
type Thread struct {
	PostID        string    `json:"post_id"`
	Post          Post      `json:"original_data"`
	FullSelftext  string    `json:"full_selftext"`
	Comments      []Comment `json:"comments"`
	TotalComments int       `json:"total_comments"`
}
