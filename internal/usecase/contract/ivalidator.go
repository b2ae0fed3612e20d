package usecasecontract

// IValidator checks user input. ValidateStruct reports every violated
// constraint at once as a validation error.
type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
	ValidateStruct(s interface{}) error
}
