package cli

import (
	"context"
	"fmt"

	"github.com/coastalbeacon/beacon/internal/auth"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, a.fd, a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return serverError(err)
	}

	fmt.Fprintln(a.out, res.Message)

	// display only; the server is the one that verifies it
	if claims, err := auth.PeekClaims(res.Token); err == nil && claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Signed in as %s until %s\n", claims.Email, claims.ExpiresAt.Time.Local().Format("15:04"))
	}
	fmt.Fprintf(a.out, "Token: %s\n", res.Token)

	return nil
}
