package model

// PasswordHint is shown under the password editor.
const PasswordHint = "Password should contain at least 8 characters, 1 special symbol character, 1 number, 1 uppercase letter"

// SignupFields returns the built-in field schema for the signup screen.
func SignupFields() []Field {
	return []Field{
		{Name: FieldUsername, Label: "Username", Kind: InputKindText, Required: true, Placeholder: "Enter username", Order: 1},
		{Name: FieldDOB, Label: "Date of birth", Kind: InputKindDate, Required: true, Order: 2},
		{Name: FieldEmail, Label: "Email address", Kind: InputKindEmail, Required: true, Placeholder: "Enter email address", Order: 3},
		{Name: FieldPassword, Label: "Password", Kind: InputKindPassword, Required: true, Placeholder: "Enter password", RevealToggle: true, Hint: PasswordHint, Order: 4},
		{Name: FieldConfirmPassword, Label: "Confirm password", Kind: InputKindPassword, Required: true, Placeholder: "Confirm password", RevealToggle: true, Order: 5},
		{Name: FieldAgree, Label: "I agree to the Terms and Conditions and Privacy Policy of this app.", Kind: InputKindCheckbox, Required: true, Order: 6},
	}
}
