package regwizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeVerifier accepts a single fixed code.
type fakeVerifier struct {
	code     string
	startErr error

	starts   int
	resends  int
	confirms int
}

func (f *fakeVerifier) StartVerification(_ context.Context, _ string) error {
	f.starts++
	return f.startErr
}

func (f *fakeVerifier) ConfirmVerification(_ context.Context, _, code string) error {
	f.confirms++
	if code != f.code {
		return errors.New("Invalid verification code")
	}
	return nil
}

func (f *fakeVerifier) ResendVerification(_ context.Context, _ string) error {
	f.resends++
	return nil
}

type fakeAuth struct {
	err      error
	payloads []Payload
}

func (f *fakeAuth) Signup(_ context.Context, p Payload) error {
	f.payloads = append(f.payloads, p)
	return f.err
}

type captureNotifier struct {
	messages   []string
	severities []Severity
}

func (c *captureNotifier) ShowMessage(text string, severity Severity) {
	c.messages = append(c.messages, text)
	c.severities = append(c.severities, severity)
}

func fillStep1(w *Wizard) {
	w.SetField(FieldFirstName, "Grace")
	w.SetField(FieldLastName, "Hopper")
	w.SetField(FieldPhone, "+61 412 345 678")
	w.SetField(FieldEmail, "grace@example.com")
	w.SetField(FieldDOB, "1992-12-09")
}

// advanceToOTP walks a fresh wizard to the OTP phase.
func advanceToOTP(t *testing.T, w *Wizard) {
	t.Helper()
	fillStep1(w)
	require.True(t, w.Next())
	require.NoError(t, w.StartVerification(context.Background()))
	require.Equal(t, AwaitingOTP, w.Phase())
}

func TestStep1GatesOnValidation(t *testing.T) {
	t.Parallel()

	w := New(&fakeAuth{}, &fakeVerifier{code: "1234"}, nil)

	// Empty form cannot advance, and the attempt surfaces every error.
	require.False(t, w.Next())
	require.Equal(t, Step1PersonalInfo, w.Step())
	require.NotEmpty(t, w.Err(FieldFirstName))
	require.NotEmpty(t, w.Err(FieldEmail))

	fillStep1(w)
	require.True(t, w.Next())
	require.Equal(t, Step2VerifyAndPassword, w.Step())
	require.Equal(t, AwaitingVerificationStart, w.Phase())
	require.Empty(t, w.Errors())
}

func TestTouchedFieldsRevalidateLive(t *testing.T) {
	t.Parallel()

	w := New(&fakeAuth{}, &fakeVerifier{code: "1234"}, nil)

	// Typing into an untouched field surfaces nothing.
	w.SetField(FieldFirstName, "G")
	require.Empty(t, w.Err(FieldFirstName))

	// Blur touches it and validates.
	w.Blur(FieldFirstName)
	require.NotEmpty(t, w.Err(FieldFirstName))

	// Now every keystroke re-runs the validator.
	w.SetField(FieldFirstName, "Gr")
	require.Empty(t, w.Err(FieldFirstName))
	w.SetField(FieldFirstName, "G")
	require.NotEmpty(t, w.Err(FieldFirstName))
}

func TestPasswordEditRevalidatesTouchedConfirm(t *testing.T) {
	t.Parallel()

	w := New(&fakeAuth{}, &fakeVerifier{code: "1234"}, nil)

	w.SetField(FieldPassword, "Abcdefg1!")
	w.SetField(FieldConfirmPassword, "Abcdefg1!")
	w.Blur(FieldConfirmPassword)
	require.Empty(t, w.Err(FieldConfirmPassword))

	// Changing the password invalidates the confirm field live.
	w.SetField(FieldPassword, "Abcdefg2!")
	require.NotEmpty(t, w.Err(FieldConfirmPassword))

	w.SetField(FieldConfirmPassword, "Abcdefg2!")
	require.Empty(t, w.Err(FieldConfirmPassword))
}

func TestOTPPhaseTransitions(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{code: "1234"}
	w := New(&fakeAuth{}, verifier, nil)
	advanceToOTP(t, w)

	// Incomplete buffer doesn't even hit the verifier.
	w.OTP().Paste("12")
	require.NoError(t, w.ConfirmOTP(context.Background()))
	require.Equal(t, 0, verifier.confirms)
	require.NotEmpty(t, w.Err(FieldOTP))

	// A wrong code keeps the phase and the entered digits.
	w.OTP().Paste("9999")
	require.Error(t, w.ConfirmOTP(context.Background()))
	require.Equal(t, AwaitingOTP, w.Phase())
	require.Equal(t, "9999", w.OTP().Code())
	require.NotEmpty(t, w.Err(FieldOTP))
	require.False(t, w.Draft().IsEmailVerified)

	// The right code clears the error and advances.
	w.OTP().Paste("1234")
	require.NoError(t, w.ConfirmOTP(context.Background()))
	require.Equal(t, PasswordEntry, w.Phase())
	require.Empty(t, w.Err(FieldOTP))
	require.True(t, w.Draft().IsEmailVerified)
}

func TestStartVerificationFailureStaysPut(t *testing.T) {
	t.Parallel()

	notifier := &captureNotifier{}
	verifier := &fakeVerifier{code: "1234", startErr: errors.New("mail provider down")}
	w := New(&fakeAuth{}, verifier, notifier)

	fillStep1(w)
	require.True(t, w.Next())

	require.Error(t, w.StartVerification(context.Background()))
	require.Equal(t, AwaitingVerificationStart, w.Phase())
	require.Equal(t, []string{"mail provider down"}, notifier.messages)
}

func TestResendCooldown(t *testing.T) {
	t.Parallel()

	verifier := &fakeVerifier{code: "1234"}
	w := New(&fakeAuth{}, verifier, nil)
	advanceToOTP(t, w)

	require.Equal(t, ResendCooldownSeconds, w.ResendCooldown())
	w.OTP().Paste("12")

	// Resend is a no-op while the countdown runs.
	require.NoError(t, w.ResendOTP(context.Background()))
	require.Equal(t, 0, verifier.resends)
	require.Equal(t, "12", w.OTP().Code())

	for range ResendCooldownSeconds {
		w.Tick()
	}
	require.Equal(t, 0, w.ResendCooldown())
	w.Tick() // never goes negative
	require.Equal(t, 0, w.ResendCooldown())

	// Now resend fires, clears the buffer, and restarts the countdown.
	require.NoError(t, w.ResendOTP(context.Background()))
	require.Equal(t, 1, verifier.resends)
	require.Equal(t, "", w.OTP().Code())
	require.Equal(t, ResendCooldownSeconds, w.ResendCooldown())
}

func TestStep2GatesOnPassword(t *testing.T) {
	t.Parallel()

	w := New(&fakeAuth{}, &fakeVerifier{code: "1234"}, nil)
	advanceToOTP(t, w)
	w.OTP().Paste("1234")
	require.NoError(t, w.ConfirmOTP(context.Background()))

	w.SetField(FieldPassword, "abcdefg1")
	w.SetField(FieldConfirmPassword, "abcdefg1")
	require.False(t, w.Next())
	require.Equal(t, Step2VerifyAndPassword, w.Step())
	require.NotEmpty(t, w.Err(FieldPassword))

	w.SetField(FieldPassword, "Strong1!@")
	w.SetField(FieldConfirmPassword, "Strong1!@")
	require.True(t, w.Next())
	require.Equal(t, Step3Preferences, w.Step())
}

func TestCannotSkipVerification(t *testing.T) {
	t.Parallel()

	w := New(&fakeAuth{}, &fakeVerifier{code: "1234"}, nil)
	fillStep1(w)
	require.True(t, w.Next())

	// Still awaiting verification start: password phase not reached.
	w.SetField(FieldPassword, "Strong1!@")
	w.SetField(FieldConfirmPassword, "Strong1!@")
	require.False(t, w.Next())
	require.Equal(t, Step2VerifyAndPassword, w.Step())
}

func TestTogglePreference(t *testing.T) {
	t.Parallel()

	w := New(&fakeAuth{}, &fakeVerifier{code: "1234"}, nil)

	w.TogglePreference("tech")
	w.TogglePreference("food")
	w.TogglePreference("travel")
	require.Equal(t, []string{"tech", "food", "travel"}, w.Draft().ArticlePreferences)

	// A fourth selection at the cap is a no-op.
	w.TogglePreference("sports")
	require.Equal(t, []string{"tech", "food", "travel"}, w.Draft().ArticlePreferences)

	// Toggling an existing selection removes it.
	w.TogglePreference("food")
	require.Equal(t, []string{"tech", "travel"}, w.Draft().ArticlePreferences)

	// And frees a slot for another pick.
	w.TogglePreference("sports")
	require.Equal(t, []string{"tech", "travel", "sports"}, w.Draft().ArticlePreferences)
}

func TestBackNeverRevalidates(t *testing.T) {
	t.Parallel()

	w := New(&fakeAuth{}, &fakeVerifier{code: "1234"}, nil)
	advanceToOTP(t, w)

	// Wreck a step 1 field, then navigate back: no new validation runs.
	w.draft.Email = ""
	require.True(t, w.Back())
	require.Equal(t, Step1PersonalInfo, w.Step())
	require.Empty(t, w.Err(FieldEmail))

	// Backing out of step 1 is not possible.
	require.False(t, w.Back())
}

func TestBackAfterVerificationSkipsOTP(t *testing.T) {
	t.Parallel()

	w := New(&fakeAuth{}, &fakeVerifier{code: "1234"}, nil)
	advanceToOTP(t, w)
	w.OTP().Paste("1234")
	require.NoError(t, w.ConfirmOTP(context.Background()))

	require.True(t, w.Back())
	require.True(t, w.Next())
	require.Equal(t, Step2VerifyAndPassword, w.Step())
	require.Equal(t, PasswordEntry, w.Phase(), "verified email is not re-verified")
}

func TestSubmitRequiresPreferences(t *testing.T) {
	t.Parallel()

	auth := &fakeAuth{}
	w := New(auth, &fakeVerifier{code: "1234"}, nil)
	advanceToOTP(t, w)
	w.OTP().Paste("1234")
	require.NoError(t, w.ConfirmOTP(context.Background()))
	w.SetField(FieldPassword, "Strong1!@")
	w.SetField(FieldConfirmPassword, "Strong1!@")
	require.True(t, w.Next())

	// No selections: rejected locally, the API is never called.
	require.NoError(t, w.Submit(context.Background()))
	require.Equal(t, Step3Preferences, w.Step())
	require.NotEmpty(t, w.Err(FieldPreferences))
	require.Empty(t, auth.payloads)

	w.TogglePreference("tech")
	w.TogglePreference("science")
	w.TogglePreference("health")
	require.NoError(t, w.Submit(context.Background()))
	require.Equal(t, Done, w.Step())
	require.Len(t, auth.payloads, 1)
}

func TestSubmitFailureReturnsToStep3(t *testing.T) {
	t.Parallel()

	notifier := &captureNotifier{}
	auth := &fakeAuth{err: errors.New("an account with this email or phone already exists")}
	w := New(auth, &fakeVerifier{code: "1234"}, notifier)
	advanceToOTP(t, w)
	w.OTP().Paste("1234")
	require.NoError(t, w.ConfirmOTP(context.Background()))
	w.SetField(FieldPassword, "Strong1!@")
	w.SetField(FieldConfirmPassword, "Strong1!@")
	require.True(t, w.Next())
	w.TogglePreference("tech")

	require.Error(t, w.Submit(context.Background()))
	require.Equal(t, Step3Preferences, w.Step())
	require.Equal(t, "Grace", w.Draft().FirstName, "draft survives the failure")
	require.Contains(t, notifier.messages[0], "already exists")
	require.Equal(t, SeverityError, notifier.severities[0])
}

func TestEndToEndRegistration(t *testing.T) {
	t.Parallel()

	auth := &fakeAuth{}
	notifier := &captureNotifier{}
	w := New(auth, &fakeVerifier{code: "1234"}, notifier)

	fillStep1(w)
	require.True(t, w.Next())
	require.NoError(t, w.StartVerification(context.Background()))
	w.OTP().Paste("1234")
	require.NoError(t, w.ConfirmOTP(context.Background()))

	w.SetField(FieldPassword, "Strong1!@")
	w.SetField(FieldConfirmPassword, "Strong1!@")
	require.True(t, w.Next())

	w.TogglePreference("tech")
	w.TogglePreference("science")
	require.NoError(t, w.Submit(context.Background()))
	require.Equal(t, Done, w.Step())

	require.Len(t, auth.payloads, 1)
	p := auth.payloads[0]
	require.Equal(t, "Grace", p.FirstName)
	require.Equal(t, "Hopper", p.LastName)
	require.Equal(t, "+61412345678", p.Phone, "phone is normalized in the payload")
	require.Equal(t, "grace@example.com", p.Email)
	require.Equal(t, "1992-12-09", p.DOB)
	require.Equal(t, "Strong1!@", p.Password)
	require.True(t, p.IsEmailVerified)
	require.Equal(t, []string{"tech", "science"}, p.ArticlePreferences)

	require.Equal(t, SeveritySuccess, notifier.severities[len(notifier.severities)-1])
}
