package regwizard

import "context"

// MaxPreferences caps article category selections.
const MaxPreferences = 3

// ResendCooldownSeconds is the countdown started after each code delivery.
const ResendCooldownSeconds = 30

// Step enumerates the wizard's top-level states.
type Step int

const (
	Step1PersonalInfo Step = iota + 1
	Step2VerifyAndPassword
	Step3Preferences
	Submitting
	Done
)

// VerifyPhase enumerates the substates within Step2VerifyAndPassword.
type VerifyPhase int

const (
	AwaitingVerificationStart VerifyPhase = iota
	AwaitingOTP
	PasswordEntry
)

// Draft is the registration data collected across the three steps.
type Draft struct {
	FirstName          string
	LastName           string
	Phone              string
	Email              string
	DOB                string // "2006-01-02"
	Password           string
	ConfirmPassword    string
	ArticlePreferences []string
	IsEmailVerified    bool
}

// Payload is the assembled submission handed to the AuthAPI collaborator.
type Payload struct {
	FirstName          string
	LastName           string
	Phone              string
	Email              string
	DOB                string
	Password           string
	ArticlePreferences []string
	IsEmailVerified    bool
}

// AuthAPI submits the completed registration.
type AuthAPI interface {
	Signup(ctx context.Context, p Payload) error
}

// Verifier runs the email verification exchange.
type Verifier interface {
	StartVerification(ctx context.Context, email string) error
	ConfirmVerification(ctx context.Context, email, code string) error
	ResendVerification(ctx context.Context, email string) error
}

// Severity classifies notification messages.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier surfaces messages to the user. Fire and forget.
type Notifier interface {
	ShowMessage(text string, severity Severity)
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) ShowMessage(string, Severity) {}

// Wizard is the registration state machine. One instance per registration
// attempt; owned by a single caller, not safe for concurrent use.
type Wizard struct {
	auth     AuthAPI
	verifier Verifier
	notifier Notifier

	step  Step
	phase VerifyPhase
	draft Draft
	otp   OTPBuffer

	// cooldown counts seconds until resend is enabled, driven by Tick.
	cooldown int

	errors  map[Field]string
	touched map[Field]bool
}

// New creates a wizard at step 1 with an empty draft.
func New(auth AuthAPI, verifier Verifier, notifier Notifier) *Wizard {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Wizard{
		auth:     auth,
		verifier: verifier,
		notifier: notifier,
		step:     Step1PersonalInfo,
		phase:    AwaitingVerificationStart,
		errors:   make(map[Field]string),
		touched:  make(map[Field]bool),
	}
}

func (w *Wizard) Step() Step         { return w.step }
func (w *Wizard) Phase() VerifyPhase { return w.phase }
func (w *Wizard) Draft() Draft       { return w.draft }
func (w *Wizard) OTP() *OTPBuffer    { return &w.otp }

// ResendCooldown returns the seconds remaining before resend is enabled.
func (w *Wizard) ResendCooldown() int { return w.cooldown }

// Err returns the current error for a field, or "" when the field is valid.
func (w *Wizard) Err(f Field) string { return w.errors[f] }

// Errors returns a copy of the full error map.
func (w *Wizard) Errors() map[Field]string {
	out := make(map[Field]string, len(w.errors))
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

// SetField updates a draft field. Fields the user has already blurred
// re-validate live on every change; untouched fields stay silent until the
// step advances. Editing the password re-checks a touched confirm field, its
// validity depends on both.
func (w *Wizard) SetField(f Field, value string) {
	switch f {
	case FieldFirstName:
		w.draft.FirstName = value
	case FieldLastName:
		w.draft.LastName = value
	case FieldPhone:
		w.draft.Phone = value
	case FieldEmail:
		w.draft.Email = value
	case FieldDOB:
		w.draft.DOB = value
	case FieldPassword:
		w.draft.Password = value
	case FieldConfirmPassword:
		w.draft.ConfirmPassword = value
	default:
		return
	}

	if w.touched[f] {
		w.runValidator(f)
	}
	if f == FieldPassword && w.touched[FieldConfirmPassword] {
		w.runValidator(FieldConfirmPassword)
	}
}

// Blur marks a field as touched and validates it immediately.
func (w *Wizard) Blur(f Field) {
	w.touched[f] = true
	w.runValidator(f)
}

func (w *Wizard) runValidator(f Field) {
	var msg string
	switch f {
	case FieldFirstName:
		msg = ValidateName("First name", w.draft.FirstName)
	case FieldLastName:
		msg = ValidateName("Last name", w.draft.LastName)
	case FieldPhone:
		msg = ValidatePhone(w.draft.Phone)
	case FieldEmail:
		msg = ValidateEmail(w.draft.Email)
	case FieldDOB:
		msg = ValidateDOB(w.draft.DOB)
	case FieldPassword:
		msg = ValidatePassword(w.draft.Password)
	case FieldConfirmPassword:
		msg = ValidateConfirmPassword(w.draft.Password, w.draft.ConfirmPassword)
	case FieldPreferences:
		msg = ValidatePreferences(w.draft.ArticlePreferences)
	default:
		return
	}
	w.setError(f, msg)
}

func (w *Wizard) setError(f Field, msg string) {
	if msg == "" {
		delete(w.errors, f)
		return
	}
	w.errors[f] = msg
}

// Next advances the wizard one step when the current step validates. It
// returns true when the step changed.
func (w *Wizard) Next() bool {
	switch w.step {
	case Step1PersonalInfo:
		return w.advanceFromStep1()
	case Step2VerifyAndPassword:
		return w.advanceFromStep2()
	default:
		return false
	}
}

func (w *Wizard) advanceFromStep1() bool {
	for _, f := range []Field{FieldFirstName, FieldLastName, FieldPhone, FieldEmail, FieldDOB} {
		w.touched[f] = true
		w.runValidator(f)
	}
	for _, f := range []Field{FieldFirstName, FieldLastName, FieldPhone, FieldEmail, FieldDOB} {
		if w.errors[f] != "" {
			return false
		}
	}

	w.step = Step2VerifyAndPassword
	if w.draft.IsEmailVerified {
		// Coming back through step 1 after verifying doesn't restart
		// verification.
		w.phase = PasswordEntry
	} else {
		w.phase = AwaitingVerificationStart
	}
	return true
}

func (w *Wizard) advanceFromStep2() bool {
	if w.phase != PasswordEntry || !w.draft.IsEmailVerified {
		return false
	}

	for _, f := range []Field{FieldPassword, FieldConfirmPassword} {
		w.touched[f] = true
		w.runValidator(f)
	}
	if w.errors[FieldPassword] != "" || w.errors[FieldConfirmPassword] != "" {
		return false
	}

	w.step = Step3Preferences
	return true
}

// Back moves to the previous step. Always allowed, never re-validates, and
// leaves any standing errors in place.
func (w *Wizard) Back() bool {
	switch w.step {
	case Step2VerifyAndPassword:
		w.step = Step1PersonalInfo
	case Step3Preferences:
		w.step = Step2VerifyAndPassword
	default:
		return false
	}
	return true
}

// StartVerification kicks off the code dispatch for the draft email and
// enters the OTP phase, starting the resend cooldown.
func (w *Wizard) StartVerification(ctx context.Context) error {
	if w.step != Step2VerifyAndPassword || w.phase != AwaitingVerificationStart {
		return nil
	}

	if err := w.verifier.StartVerification(ctx, w.draft.Email); err != nil {
		w.notifier.ShowMessage(messageFrom(err, "Could not send the verification code"), SeverityError)
		return err
	}

	w.phase = AwaitingOTP
	w.cooldown = ResendCooldownSeconds
	w.otp.Clear()
	return nil
}

// ConfirmOTP submits the entered code. A wrong or incomplete code surfaces an
// error and keeps the entered digits; only success advances to password
// entry.
func (w *Wizard) ConfirmOTP(ctx context.Context) error {
	if w.step != Step2VerifyAndPassword || w.phase != AwaitingOTP {
		return nil
	}
	if !w.otp.Complete() {
		w.setError(FieldOTP, "Enter the 4-digit code")
		return nil
	}

	if err := w.verifier.ConfirmVerification(ctx, w.draft.Email, w.otp.Code()); err != nil {
		w.setError(FieldOTP, messageFrom(err, "Invalid verification code"))
		return err
	}

	w.setError(FieldOTP, "")
	w.draft.IsEmailVerified = true
	w.phase = PasswordEntry
	return nil
}

// Tick advances the resend countdown by one second. The caller drives it from
// its timer.
func (w *Wizard) Tick() {
	if w.cooldown > 0 {
		w.cooldown--
	}
}

// ResendOTP requests a fresh code once the cooldown has elapsed. It clears
// the entered digits and restarts the countdown.
func (w *Wizard) ResendOTP(ctx context.Context) error {
	if w.step != Step2VerifyAndPassword || w.phase != AwaitingOTP || w.cooldown > 0 {
		return nil
	}

	if err := w.verifier.ResendVerification(ctx, w.draft.Email); err != nil {
		w.notifier.ShowMessage(messageFrom(err, "Could not resend the verification code"), SeverityError)
		return err
	}

	w.otp.Clear()
	w.setError(FieldOTP, "")
	w.cooldown = ResendCooldownSeconds
	return nil
}

// TogglePreference flips a category selection. Selecting a fourth category
// when three are already chosen is a no-op.
func (w *Wizard) TogglePreference(id string) {
	for i, p := range w.draft.ArticlePreferences {
		if p == id {
			w.draft.ArticlePreferences = append(
				w.draft.ArticlePreferences[:i],
				w.draft.ArticlePreferences[i+1:]...,
			)
			if w.touched[FieldPreferences] {
				w.runValidator(FieldPreferences)
			}
			return
		}
	}
	if len(w.draft.ArticlePreferences) >= MaxPreferences {
		return
	}
	w.draft.ArticlePreferences = append(w.draft.ArticlePreferences, id)
	if w.touched[FieldPreferences] {
		w.runValidator(FieldPreferences)
	}
}

// Submit validates step 3 and hands the assembled payload to the AuthAPI.
// On success the wizard reaches Done; on rejection it returns to step 3 with
// the draft intact and the server's message surfaced.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step != Step3Preferences {
		return nil
	}

	w.touched[FieldPreferences] = true
	w.runValidator(FieldPreferences)
	if w.errors[FieldPreferences] != "" || !w.draft.IsEmailVerified {
		return nil
	}

	w.step = Submitting
	if err := w.auth.Signup(ctx, w.Payload()); err != nil {
		w.step = Step3Preferences
		w.notifier.ShowMessage(messageFrom(err, "Registration failed, please try again"), SeverityError)
		return err
	}

	w.step = Done
	w.notifier.ShowMessage("Account created successfully", SeveritySuccess)
	return nil
}

// Payload assembles the submission from the draft. The phone number is
// normalized and the confirm field is dropped.
func (w *Wizard) Payload() Payload {
	prefs := make([]string, len(w.draft.ArticlePreferences))
	copy(prefs, w.draft.ArticlePreferences)

	return Payload{
		FirstName:          w.draft.FirstName,
		LastName:           w.draft.LastName,
		Phone:              NormalizePhone(w.draft.Phone),
		Email:              w.draft.Email,
		DOB:                w.draft.DOB,
		Password:           w.draft.Password,
		ArticlePreferences: prefs,
		IsEmailVerified:    w.draft.IsEmailVerified,
	}
}

// messageFrom prefers the error's own message when it has one.
func messageFrom(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
