package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/coastalbeacon/beacon/internal/client"
	"github.com/coastalbeacon/beacon/internal/domain/user"
	"github.com/coastalbeacon/beacon/internal/quiz"
)

// SignUp collects the form, checks each field locally, runs the quiz and
// posts the result. The server repeats every check.
func (a *App) SignUp(ctx context.Context) error {
	username, err := GetValidated(a.reader, "-Enter username", a.out, user.ValidUsername, user.UsernameHint)
	if err != nil {
		return err
	}

	mobile, err := GetValidated(a.reader, "-Enter mobile number", a.out, user.ValidMobile, user.MobileHint)
	if err != nil {
		return err
	}

	email, err := GetValidated(a.reader, "-Enter email", a.out, user.ValidEmail, user.EmailHint)
	if err != nil {
		return err
	}

	password, err := a.nonEmptyPassword()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Answer a few quick questions before we create your account.")
	answers, err := quiz.Run(func(q quiz.Question, i, total int) (string, error) {
		return GetChoice(a.reader, fmt.Sprintf("(%d/%d) %s", i+1, total, q.Prompt), q.Options, a.out)
	})
	if err != nil {
		return err
	}

	msg, err := a.api.SignUp(ctx, user.SignUpRequest{
		Username:  username,
		Mobile:    mobile,
		Email:     email,
		Password:  password,
		GKAnswers: answers,
	})
	if err != nil {
		return serverError(err)
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) nonEmptyPassword() (string, error) {
	for {
		pw, err := GetPassword(a.reader, a.fd, a.out)
		if err != nil {
			return "", err
		}
		if pw != "" {
			return pw, nil
		}
		fmt.Fprintln(a.out, "Password is required")
	}
}

// serverError keeps the server's own message for rejected requests.
func serverError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	return err
}
