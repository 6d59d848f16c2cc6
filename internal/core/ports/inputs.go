package ports

import "time"

// Request DTOs shared by the transport and service layers. The validate tags
// are the shape rules; validation.Validator maps each failing tag to the
// message clients see.

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string `json:"username" form:"username" validate:"required,alphanum,min=8,max=15"`
	Password string `json:"password" form:"password" validate:"required,alphanum,min=8,max=15"`
	Name     string `json:"name"     form:"name"     validate:"required,letterspace,max=50"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	UserType string `json:"userType" form:"userType" validate:"required,oneof=blogger restaurateur user"`
}

// LoginInput carries a login request.
type LoginInput struct {
	Username string `json:"username" form:"username" validate:"required,alphanum,min=8,max=15"`
	UserType string `json:"userType" form:"userType" validate:"required,oneof=blogger restaurateur user"`
	Password string `json:"password" form:"password" validate:"required,alphanum,min=8,max=15"`
}

// UsernameInput carries an availability check.
type UsernameInput struct {
	Username string `json:"username" form:"username" validate:"required"`
}

// RestaurantInput carries the mutable fields of a restaurant. IsActive is
// ignored on create; new restaurants always start active.
type RestaurantInput struct {
	Name         string `json:"name"         form:"name"         validate:"required,alnumspace,min=5,max=50"`
	Description  string `json:"description"  form:"description"  validate:"required,max=255"`
	Location     string `json:"location"     form:"location"     validate:"required,max=255"`
	Restaurateur string `json:"restaurateur" form:"restaurateur" validate:"required,alphanum,min=8,max=15"`
	IsActive     *bool  `json:"isActive"     form:"isActive"     validate:"required"`
}

// BlogInput carries a new blog.
type BlogInput struct {
	Title      string `json:"title"      form:"title"      validate:"required,max=255"`
	Content    string `json:"content"    form:"content"    validate:"required"`
	Restaurant string `json:"restaurant" form:"restaurant" validate:"required"`
	Blogger    string `json:"blogger"    form:"blogger"    validate:"required,min=8,max=15"`
}

// CommentInput carries a new comment.
type CommentInput struct {
	Content  string `json:"content"  form:"content"  validate:"required"`
	Username string `json:"username" form:"username" validate:"required,min=8,max=15"`
}

// ReactionInput carries a reaction submission.
type ReactionInput struct {
	Type     string `json:"type"     form:"type"     validate:"required,oneof=yummy yucky"`
	Username string `json:"username" form:"username" validate:"required,min=8,max=15"`
}

// RatingInput carries a rating submission. A zero Timestamp means "now".
type RatingInput struct {
	Stars     int       `json:"stars"     form:"stars"     validate:"required,min=1,max=5"`
	Blogger   string    `json:"blogger"   form:"blogger"   validate:"required,min=8,max=15"`
	Timestamp time.Time `json:"timestamp" form:"timestamp"`
}

// RatingKeyInput identifies a rating to delete.
type RatingKeyInput struct {
	Blogger string `json:"blogger" form:"blogger" query:"blogger" validate:"required"`
}

// ImageUpload is a cover image already read into memory by the transport layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}
