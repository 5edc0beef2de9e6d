package domain

// Post is a community post under communityPosts/{postId}.
type Post struct {
	ID             string
	AuthorID       string
	Visible        *bool
	DeletedByAdmin bool
	BlockedReason  string
	Title          string
	Content        string
}

// Comment lives under communityPosts/{postId}/comments/{commentId}.
type Comment struct {
	ID       string
	PostID   string
	AuthorID string
	Content  string
}

// IsVisible reports whether the post is shown. Posts are visible unless
// the field is explicitly false.
func (p Post) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// IsHidden reports whether visible was explicitly set to false.
func (p Post) IsHidden() bool {
	return p.Visible != nil && !*p.Visible
}

// DecodePost reads a post document.
func DecodePost(id string, doc Document) Post {
	deleted, _ := doc.Bool("deletedByAdmin")
	return Post{
		ID:             id,
		AuthorID:       doc.String("authorId"),
		Visible:        doc.OptionalBool("visible"),
		DeletedByAdmin: deleted,
		BlockedReason:  doc.String("blockedReason"),
		Title:          doc.String("title"),
		Content:        doc.String("content"),
	}
}

// DecodeComment reads a comment document.
func DecodeComment(postID, id string, doc Document) Comment {
	return Comment{
		ID:       id,
		PostID:   postID,
		AuthorID: doc.String("authorId"),
		Content:  doc.String("content"),
	}
}

// CorporateSignup is a company membership application.
type CorporateSignup struct {
	ID          string
	CompanyName string
	Name        string
}

// DecodeSignup reads a corporate_signups document.
func DecodeSignup(id string, doc Document) CorporateSignup {
	return CorporateSignup{
		ID:          id,
		CompanyName: doc.String("companyName"),
		Name:        doc.String("name"),
	}
}

// Applicant returns the display name of the applying company, falling
// back to fallback when neither name field is set.
func (s CorporateSignup) Applicant(fallback string) string {
	if s.CompanyName != "" {
		return s.CompanyName
	}
	if s.Name != "" {
		return s.Name
	}
	return fallback
}
