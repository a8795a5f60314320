package regwizard

import (
	"context"

	"github.com/knowaria/knowaria/pkg/knowariasdk"
)

// SDKAuth adapts a platform SDK client to the AuthAPI collaborator. The
// *knowariasdk.Client already satisfies Verifier directly.
type SDKAuth struct {
	Client *knowariasdk.Client
}

func (a SDKAuth) Signup(ctx context.Context, p Payload) error {
	_, err := a.Client.Signup(ctx, knowariasdk.SignupRequest{
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Phone:              p.Phone,
		Email:              p.Email,
		DOB:                p.DOB,
		Password:           p.Password,
		ArticlePreferences: p.ArticlePreferences,
	})
	return err
}
