package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cafecritique/review-api/internal/core/domain"
)

const (
	msgUsernameLength = "Username must have at least 8 characters but no more than 15"
	msgPasswordLength = "Password must have at least 8 characters but no more than 15"
	msgUserType       = "User type must be one of the following: Blogger, Restaurateur, Typical User"
	msgRestaurantName = "Name must have at least 5 characters but no more than 50"
)

var msgStarRange = fmt.Sprintf("Star rating must be from %d to %d only", domain.MinStars, domain.MaxStars)

// messages maps "<Struct>.<field>.<tag>" to the text clients see.
var messages = map[string]string{
	"RegisterInput.username.required": "You must provide a username",
	"RegisterInput.username.alphanum": "Username must have numbers and letters only",
	"RegisterInput.username.min":      msgUsernameLength,
	"RegisterInput.username.max":      msgUsernameLength,
	"RegisterInput.password.required": "You must provide a password",
	"RegisterInput.password.alphanum": "Password must have numbers and letters only",
	"RegisterInput.password.min":      msgPasswordLength,
	"RegisterInput.password.max":      msgPasswordLength,
	"RegisterInput.name.required":     "You must provide a name",
	"RegisterInput.name.letterspace":  "Name must have letters only",
	"RegisterInput.name.max":          "Name must have no more than 50 characters",
	"RegisterInput.email.required":    "You must provide an e-mail",
	"RegisterInput.email.email":       "Email must be valid",
	"RegisterInput.userType.required": "You must provide a user type",
	"RegisterInput.userType.oneof":    msgUserType,

	"LoginInput.username.required": "You must provide a username",
	"LoginInput.username.alphanum": "Username must have numbers and letters only",
	"LoginInput.username.min":      msgUsernameLength,
	"LoginInput.username.max":      msgUsernameLength,
	"LoginInput.password.required": "You must provide a password",
	"LoginInput.password.alphanum": "Password must have numbers and letters only",
	"LoginInput.password.min":      msgPasswordLength,
	"LoginInput.password.max":      msgPasswordLength,
	"LoginInput.userType.required": "You must provide a user type",
	"LoginInput.userType.oneof":    msgUserType,

	"UsernameInput.username.required": "You must provide a username",

	"RestaurantInput.name.required":         "You must provide a name",
	"RestaurantInput.name.alnumspace":       "Name must have numbers and letters only",
	"RestaurantInput.name.min":              msgRestaurantName,
	"RestaurantInput.name.max":              msgRestaurantName,
	"RestaurantInput.description.required":  "You must provide a description",
	"RestaurantInput.description.max":       "Description must have no more than 255 characters",
	"RestaurantInput.location.required":     "You must provide a location",
	"RestaurantInput.location.max":          "Location must have no more than 255 characters",
	"RestaurantInput.restaurateur.required": "You must provide a restaurateur",
	"RestaurantInput.restaurateur.alphanum": "Restaurateur must have numbers and letters only",
	"RestaurantInput.restaurateur.min":      msgUsernameLength,
	"RestaurantInput.restaurateur.max":      msgUsernameLength,
	"RestaurantInput.isActive.required":     "You must provide active field",

	"BlogInput.title.required":      "You must provide a title",
	"BlogInput.title.max":           "Title must have no more than 255 characters",
	"BlogInput.content.required":    "You must provide a content",
	"BlogInput.restaurant.required": "You must provide a restaurant",
	"BlogInput.blogger.required":    "You must provide a blogger",
	"BlogInput.blogger.min":         msgUsernameLength,
	"BlogInput.blogger.max":         msgUsernameLength,

	"CommentInput.content.required":  "You must provide a content",
	"CommentInput.username.required": "You must provide a username",
	"CommentInput.username.min":      msgUsernameLength,
	"CommentInput.username.max":      msgUsernameLength,

	"ReactionInput.type.required":     "You must provide a reaction type",
	"ReactionInput.type.oneof":        "Reaction must be one of the following: yummy, yucky",
	"ReactionInput.username.required": "You must provide a username",
	"ReactionInput.username.min":      msgUsernameLength,
	"ReactionInput.username.max":      msgUsernameLength,

	"RatingInput.stars.required":   "You must provide a star rating",
	"RatingInput.stars.min":        msgStarRange,
	"RatingInput.stars.max":        msgStarRange,
	"RatingInput.blogger.required": "You must provide a blogger username",
	"RatingInput.blogger.min":      msgUsernameLength,
	"RatingInput.blogger.max":      msgUsernameLength,

	"RatingKeyInput.blogger.required": "You must provide a blogger username",
}

// message resolves the client-facing text for a failed rule, falling back to
// a generic description for rules without a registered message.
func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Namespace()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("You must provide %s", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s has an invalid length", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
