package reddit

import (
	"encoding/json"
	"time"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

// thing is Reddit's tagged-union envelope: a kind string plus raw data.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// children decodes a Listing thing's children.
func (t *thing) children() ([]thing, error) {
	if len(t.Data) == 0 {
		return nil, nil
	}
	var listing struct {
		Children []thing `json:"children"`
	}
	if err := json.Unmarshal(t.Data, &listing); err != nil {
		return nil, err
	}
	return listing.Children, nil
}

// postData is the t3 payload subset the pipeline needs.
type postData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
	Selftext    string  `json:"selftext"`
	Subreddit   string  `json:"subreddit"`
}

func (p *postData) toPost() entities.Post {
	author := p.Author
	if author == "" {
		author = "[deleted]"
	}
	return entities.Post{
		ID:          p.ID,
		Title:       p.Title,
		Author:      author,
		Score:       p.Score,
		CreatedUTC:  time.Unix(int64(p.CreatedUTC), 0).UTC(),
		NumComments: p.NumComments,
		Selftext:    p.Selftext,
		Subreddit:   p.Subreddit,
	}
}

// commentData is the t1 payload subset the pipeline needs, plus the fields of
// a "more" stub (Children) so both kinds decode into one shape.
type commentData struct {
	Body       string          `json:"body"`
	Score      int             `json:"score"`
	Author     string          `json:"author"`
	CreatedUTC float64         `json:"created_utc"`
	Replies    json.RawMessage `json:"replies"`
	Children   []string        `json:"children"`
}

// walkComments flattens a comment forest depth-first, appending comments to
// out and unexpanded "more" stub IDs to pending. Reddit encodes an empty
// reply tree as the empty string rather than a listing, so replies are decoded
// leniently.
func walkComments(nodes []thing, out *[]entities.Comment, pending *[]string) error {
	for _, node := range nodes {
		var c commentData
		if err := json.Unmarshal(node.Data, &c); err != nil {
			return err
		}

		switch node.Kind {
		case "t1":
			author := c.Author
			if author == "" {
				author = "[deleted]"
			}
			*out = append(*out, entities.Comment{
				Body:       c.Body,
				Score:      c.Score,
				Author:     author,
				CreatedUTC: time.Unix(int64(c.CreatedUTC), 0).UTC(),
			})

			if replies, ok := decodeReplies(c.Replies); ok {
				if err := walkComments(replies, out, pending); err != nil {
					return err
				}
			}
		case "more":
			*pending = append(*pending, c.Children...)
		}
	}
	return nil
}

// decodeReplies decodes a comment's reply listing, tolerating the empty-string
// encoding of "no replies".
func decodeReplies(raw json.RawMessage) ([]thing, bool) {
	if len(raw) == 0 || string(raw) == `""` || string(raw) == "null" {
		return nil, false
	}
	var t thing
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, false
	}
	children, err := t.children()
	if err != nil || len(children) == 0 {
		return nil, false
	}
	return children, true
}
