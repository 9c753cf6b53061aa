package storage

import (
	"encoding/json"
	"strings"
	"time"
)

// Article is an education article from the content API. Bodies are
// untrusted HTML until they pass through the sanitizer.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CategoryID  string    `json:"categoryArtikelId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// articleWire tolerates the legacy payload shape: older API responses
// carry the title under "judul". Normalization happens here, at the
// decode boundary, so the rest of the code only ever sees Title.
type articleWire struct {
	ID          FlexID    `json:"id"`
	Title       string    `json:"title"`
	Judul       string    `json:"judul"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CategoryID  FlexID    `json:"categoryArtikelId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a *Article) UnmarshalJSON(data []byte) error {
	var w articleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	title := w.Title
	if title == "" {
		title = w.Judul
	}
	*a = Article{
		ID:          string(w.ID),
		Title:       title,
		Description: w.Description,
		Image:       w.Image,
		CategoryID:  string(w.CategoryID),
		CreatedAt:   w.CreatedAt,
	}
	return nil
}

// Video is a tutorial video; URL points at an external player page.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CategoryID  string    `json:"categoryVideoId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type videoWire struct {
	ID          FlexID    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CategoryID  FlexID    `json:"categoryVideoId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (v *Video) UnmarshalJSON(data []byte) error {
	var w videoWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*v = Video{
		ID:          string(w.ID),
		Title:       w.Title,
		Description: w.Description,
		URL:         w.URL,
		CategoryID:  string(w.CategoryID),
		CreatedAt:   w.CreatedAt,
	}
	return nil
}

// Thread is a forum discussion.
type Thread struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Keywords  StringList `json:"keywords"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Replies   []Reply    `json:"replies,omitempty"`
}

type threadWire struct {
	ID        FlexID     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Keywords  StringList `json:"keywords"`
	UserID    FlexID     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Replies   []Reply    `json:"replies"`
}

func (t *Thread) UnmarshalJSON(data []byte) error {
	var w threadWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Thread{
		ID:        string(w.ID),
		Title:     w.Title,
		Content:   w.Content,
		Keywords:  w.Keywords,
		UserID:    string(w.UserID),
		CreatedAt: w.CreatedAt,
		Replies:   w.Replies,
	}
	return nil
}

type Reply struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"forumId"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type replyWire struct {
	ID        FlexID    `json:"id"`
	ThreadID  FlexID    `json:"forumId"`
	Content   string    `json:"content"`
	UserID    FlexID    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	var w replyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Reply{
		ID:        string(w.ID),
		ThreadID:  string(w.ThreadID),
		Content:   w.Content,
		UserID:    string(w.UserID),
		CreatedAt: w.CreatedAt,
	}
	return nil
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoryWire struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var w categoryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Category{ID: string(w.ID), Name: w.Name}
	return nil
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type userWire struct {
	ID    FlexID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*u = User{
		ID:    string(w.ID),
		Name:  w.Name,
		Email: w.Email,
		Phone: w.Phone,
		Role:  w.Role,
	}
	return nil
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == "admin" }

// NewsItem is an entry pulled from an external agri-news feed.
type NewsItem struct {
	ID          string    `json:"id"`
	SourceID    string    `json:"source_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Image       string    `json:"image"`
	Published   time.Time `json:"published"`
	Read        bool      `json:"read"`
}

// FetchState tracks conditional-GET metadata per news source.
type FetchState struct {
	SourceID     string    `json:"source_id"`
	ETag         string    `json:"etag"`
	LastModified string    `json:"last_modified"`
	LastFetched  time.Time `json:"last_fetched"`
}

// FlexID decodes a JSON string or number into a string, since the API
// is not consistent about identifier types across collections.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = FlexID(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = FlexID(num.String())
	return nil
}

// StringList decodes either a JSON array of strings or a single
// comma-separated string, which is how the forum endpoint has been
// observed to serialize keyword tags.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*s = out
	return nil
}
