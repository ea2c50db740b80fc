// internal/domain/models/news.go
package models

import "slices"

// NewsArticle is a news post or story. Status changes are driven by the
// caller; any field may be set directly through a patch.
type NewsArticle struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Excerpt  string        `json:"excerpt"`
	Content  string        `json:"content"`
	Category string        `json:"category"`
	Type     string        `json:"type"`
	Author   string        `json:"author"`
	Date     string        `json:"date"`
	ReadTime string        `json:"readTime"`
	Tags     []string      `json:"tags"`
	Featured bool          `json:"featured"`
	Views    int           `json:"views"`
	Shares   int           `json:"shares"`
	Image    string        `json:"image"`
	Status   ArticleStatus `json:"status"`
}

func (a NewsArticle) RecordID() string { return a.ID }

func (a NewsArticle) Clone() NewsArticle {
	a.Tags = slices.Clone(a.Tags)
	return a
}

// Normalized returns a with an empty or unknown status set to draft.
func (a NewsArticle) Normalized() NewsArticle {
	a.Status = orDefault(a.Status, ArticleDraft)
	return a
}

// NewsArticlePatch is a partial update; nil fields are left unchanged, and
// so is a status outside the set.
type NewsArticlePatch struct {
	Title    *string        `json:"title,omitempty"`
	Excerpt  *string        `json:"excerpt,omitempty"`
	Content  *string        `json:"content,omitempty"`
	Category *string        `json:"category,omitempty"`
	Type     *string        `json:"type,omitempty"`
	Author   *string        `json:"author,omitempty"`
	Date     *string        `json:"date,omitempty"`
	ReadTime *string        `json:"readTime,omitempty"`
	Tags     *[]string      `json:"tags,omitempty"`
	Featured *bool          `json:"featured,omitempty"`
	Views    *int           `json:"views,omitempty"`
	Shares   *int           `json:"shares,omitempty"`
	Image    *string        `json:"image,omitempty"`
	Status   *ArticleStatus `json:"status,omitempty"`
}

func (p NewsArticlePatch) Apply(a *NewsArticle) {
	setIf(&a.Title, p.Title)
	setIf(&a.Excerpt, p.Excerpt)
	setIf(&a.Content, p.Content)
	setIf(&a.Category, p.Category)
	setIf(&a.Type, p.Type)
	setIf(&a.Author, p.Author)
	setIf(&a.Date, p.Date)
	setIf(&a.ReadTime, p.ReadTime)
	setSliceIf(&a.Tags, p.Tags)
	setIf(&a.Featured, p.Featured)
	setIf(&a.Views, p.Views)
	setIf(&a.Shares, p.Shares)
	setIf(&a.Image, p.Image)
	setEnumIf(&a.Status, p.Status)
}
