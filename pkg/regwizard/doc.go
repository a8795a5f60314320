// Package regwizard drives the three-step registration flow: personal info,
// email verification plus password, then article preferences.
//
// The wizard is an explicit state machine owned by a single caller (a UI
// event loop); it is not safe for concurrent use. Remote work happens through
// the AuthAPI and Verifier collaborators, which take a context so callers can
// cancel in-flight requests on navigation.
package regwizard
