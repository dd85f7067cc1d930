package validation

// EducationInput is the normalized form of a profile education entry.
type EducationInput struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	From         string `json:"from" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"required"`
	To           string `json:"to"`
	Description  string `json:"description"`
	Current      bool   `json:"current"`
}

var educationMessages = map[string]map[string]string{
	"school":       {"": "School field is required"},
	"degree":       {"": "Degree field is required"},
	"from":         {"": "From date field is required"},
	"fieldOfStudy": {"": "Field of study field is required"},
}

// ValidateEducationInput normalizes data into an EducationInput and checks the
// required fields. Each missing field contributes exactly one error.
func ValidateEducationInput(data Record) (in EducationInput, errs Errors, isValid bool) {
	current, _ := data["current"].(bool)
	in = EducationInput{
		School:       data.String("school"),
		Degree:       data.String("degree"),
		From:         data.String("from"),
		FieldOfStudy: data.String("fieldOfStudy"),
		To:           data.String("to"),
		Description:  data.String("description"),
		Current:      current,
	}
	errs = check(in, educationMessages)
	return in, errs, len(errs) == 0
}
