// Package cli is the terminal front end for signing up and logging in.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/coastalbeacon/beacon/internal/client"
	"github.com/coastalbeacon/beacon/internal/domain/user"
)

type API interface {
	SignUp(ctx context.Context, req user.SignUpRequest) (string, error)
	Login(ctx context.Context, email, password string) (client.LoginResult, error)
}

type App struct {
	api    API
	reader *bufio.Reader
	out    io.Writer
	fd     int
}

func NewApp(api API, in io.Reader, out io.Writer) *App {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}

	return &App{
		api:    api,
		reader: bufio.NewReader(in),
		out:    out,
		fd:     fd,
	}
}
