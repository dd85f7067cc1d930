package validation

const (
	TextMinLength = 1
	TextMaxLength = 300
)

// PostInput is the normalized form of a post or comment submission.
type PostInput struct {
	Text   string `json:"text" validate:"required,min=1,max=300"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

var postMessages = map[string]map[string]string{
	"text": {
		"required": "Text field is required",
		"":         "Post must be between 1 and 300 characters",
	},
}

// ValidatePostInput normalizes data into a PostInput and validates it.
// isValid is true iff errs is empty.
func ValidatePostInput(data Record) (in PostInput, errs Errors, isValid bool) {
	in = PostInput{
		Text:   data.String("text"),
		Name:   data.String("name"),
		Avatar: data.String("avatar"),
	}
	errs = check(in, postMessages)
	return in, errs, len(errs) == 0
}
