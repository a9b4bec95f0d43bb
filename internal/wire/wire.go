//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/issue-warden/internal/app"
)

func InitializeApp(ctx context.Context) (*app.App, error) {
	wire.Build(AppSet)
	return &app.App{}, nil
}

func InitializeCheck(ctx context.Context) (*CheckComponents, error) {
	wire.Build(AppSet, wire.Struct(new(CheckComponents), "*"))
	return &CheckComponents{}, nil
}
