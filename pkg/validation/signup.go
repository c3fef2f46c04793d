package validation

import (
	"regexp"
	"time"

	"github.com/goliatone/go-signup/pkg/model"
)

// SpecialCharacters is the symbol set a password must draw from.
const SpecialCharacters = `!@#$%^&*(),.?":{}|<>`

// PasswordMinLength and UsernameMinLength bound the credential fields.
const (
	UsernameMinLength = 4
	PasswordMinLength = 8
)

// Messages surfaced by the signup rules.
const (
	MsgUsernameRequired  = "Username is required"
	MsgUsernameMin       = "Username must be at least 4 characters long"
	MsgDOBRequired       = "Date of birth is required"
	MsgDOBInvalid        = "Date of birth must be a valid date"
	MsgDOBFuture         = "Date of birth cannot be in the future"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Invalid email format"
	MsgPasswordRequired  = "Password is required"
	MsgPasswordMin       = "Password must be at least 8 characters"
	MsgPasswordLower     = "Password must contain at least one lowercase letter"
	MsgPasswordUpper     = "Password must contain at least one uppercase letter"
	MsgPasswordNumber    = "Password must contain at least one number"
	MsgPasswordSpecial   = "Password must contain at least one special character"
	MsgConfirmRequired   = "Confirm password is required"
	MsgConfirmMismatch   = "Passwords must match"
	MsgAgreementRequired = "You must agree to the terms and conditions"
)

var (
	lowerPattern = regexp.MustCompile(`[a-z]`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// SignupOption configures SignupRules.
type SignupOption func(*signupConfig)

type signupConfig struct {
	clock func() time.Time
}

// WithClock overrides the wall clock used by the date-of-birth rule. The
// clock is consulted on every evaluation.
func WithClock(clock func() time.Time) SignupOption {
	return func(cfg *signupConfig) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// SignupRules returns the rule set for the signup screen.
func SignupRules(options ...SignupOption) *RuleSet {
	cfg := signupConfig{clock: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	const (
		username = model.FieldUsername
		dob      = model.FieldDOB
		email    = model.FieldEmail
		password = model.FieldPassword
		confirm  = model.FieldConfirmPassword
		agree    = model.FieldAgree
	)

	return MustNewRuleSet(
		Rule{Field: username, Check: Required(username), Message: MsgUsernameRequired},
		Rule{Field: username, Check: MinLength(username, UsernameMinLength), Message: MsgUsernameMin},

		Rule{Field: dob, Check: Required(dob), Message: MsgDOBRequired},
		Rule{Field: dob, Check: ValidDate(dob), Message: MsgDOBInvalid},
		Rule{Field: dob, Check: NotAfterToday(dob, cfg.clock), Message: MsgDOBFuture},

		Rule{Field: email, Check: Required(email), Message: MsgEmailRequired},
		Rule{Field: email, Check: Email(email), Message: MsgEmailInvalid},

		Rule{Field: password, Check: Required(password), Message: MsgPasswordRequired},
		Rule{Field: password, Check: MinLength(password, PasswordMinLength), Message: MsgPasswordMin},
		Rule{Field: password, Check: Matches(password, lowerPattern), Message: MsgPasswordLower},
		Rule{Field: password, Check: Matches(password, upperPattern), Message: MsgPasswordUpper},
		Rule{Field: password, Check: Matches(password, digitPattern), Message: MsgPasswordNumber},
		Rule{Field: password, Check: ContainsAny(password, SpecialCharacters), Message: MsgPasswordSpecial},

		Rule{Field: confirm, Check: Required(confirm), Message: MsgConfirmRequired},
		Rule{Field: confirm, DependsOn: []string{password}, Check: EqualsField(confirm, password), Message: MsgConfirmMismatch},

		Rule{Field: agree, Check: IsTrue(agree), Message: MsgAgreementRequired},
	)
}
