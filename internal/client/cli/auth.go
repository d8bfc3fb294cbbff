package cli

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/pipeline"
	"github.com/dmitrijs2005/gophblog/internal/common"
)

// Register prompts for name, email, password and an optional avatar, and
// registers. Name and email are prefilled from a pending registration.
func (a *App) Register(ctx context.Context) error {
	var pending models.PendingRegistration
	if p := a.actions.Store().Auth().PendingRegistration; p != nil {
		pending = *p
	}

	name, err := GetTextWithDefault(a.reader, "Enter name", pending.Name, a.out)
	if err != nil {
		return err
	}
	email, err := GetTextWithDefault(a.reader, "Enter email", pending.Email, a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	avatarLine, err := GetSimpleText(a.reader, "Avatar image path (empty to skip)", a.out)
	if err != nil {
		return err
	}
	var avatar *models.ImageFile
	if avatarLine != "" {
		f, err := loadImage(avatarLine)
		if err != nil {
			return err
		}
		avatar = &f
	}

	a.actions.Register(ctx, pipeline.Registration{
		Name:     name,
		Email:    email,
		Password: string(password),
		Avatar:   avatar,
	})
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.actions.Login(ctx, email, string(password))
	return nil
}

// Logout clears the user and resets cached blog state.
func (a *App) Logout(ctx context.Context) error {
	a.actions.Logout(ctx)
	a.actions.ResetBlogState()
	return nil
}

// CancelRegistration forgets a stashed pending registration.
func (a *App) CancelRegistration(ctx context.Context) error {
	return a.actions.ClearPendingRegistration(ctx)
}
