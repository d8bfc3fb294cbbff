package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/dmitrijs2005/gophblog/internal/client/imaging"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

const msgProfileNotFound = "User profile not found"

// Registration is the input of Register. Avatar is optional.
type Registration struct {
	Name     string
	Email    string
	Password string
	Avatar   *models.ImageFile
}

// Register creates an auth identity and then its profile row. A failed
// profile write leaves the identity in place.
func (p *Pipeline) Register(ctx context.Context, in Registration) (*models.User, error) {
	const op = "auth/register"

	if blank(in.Name) || blank(in.Email) || in.Password == "" {
		return nil, p.reject(ctx, op, invalid(msgAllFieldsRequired))
	}
	email := strings.TrimSpace(in.Email)
	if r := checkEmail(email, p.opts.AllowedEmailDomain); r != nil {
		return nil, p.reject(ctx, op, r)
	}

	ident, err := p.gw.SignUp(ctx, email, in.Password)
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}

	row := gateway.Row{
		"user_id": ident.ID,
		"name":    strings.TrimSpace(in.Name),
		"email":   email,
	}
	if in.Avatar != nil && len(in.Avatar.Content) > 0 {
		avatar, err := imaging.EncodeDataURL(in.Avatar.Content)
		if err != nil {
			return nil, p.reject(ctx, op, partial(fmt.Errorf("avatar: %w", err)))
		}
		row["image"] = avatar
	}

	rows, err := p.gw.Insert(ctx, gateway.TableProfiles, row)
	if err != nil {
		return nil, p.reject(ctx, op, partial(err))
	}

	var u models.User
	if err := decodeSingle(rows, &u); err != nil {
		return nil, p.reject(ctx, op, partial(err))
	}

	p.log.Info(ctx, "registered", "user_id", u.UserID)
	return &u, nil
}

// Login signs in with a password and loads the matching profile.
func (p *Pipeline) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "auth/login"

	if blank(email) || password == "" {
		return nil, p.reject(ctx, op, invalid(msgLoginRequired))
	}

	s, err := p.gw.SignInWithPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}

	u, err := p.profile(ctx, s.User.ID)
	if err != nil {
		return nil, p.reject(ctx, op, failed(err))
	}
	if u == nil {
		return nil, p.reject(ctx, op, notFound(msgProfileNotFound))
	}
	return u, nil
}

// Logout ends the backend session. Callers clear local state first; a
// failure here does not bring it back.
func (p *Pipeline) Logout(ctx context.Context) error {
	if err := p.gw.SignOut(ctx); err != nil {
		return p.reject(ctx, "auth/logout", failed(err))
	}
	return nil
}

// RestoreSession returns the profile behind a still-valid session, or nil
// when nobody is signed in or the profile is gone.
func (p *Pipeline) RestoreSession(ctx context.Context) (*models.User, error) {
	s, err := p.gw.GetSession(ctx)
	if err != nil {
		return nil, failed(err)
	}
	if s == nil {
		return nil, nil
	}

	u, err := p.profile(ctx, s.User.ID)
	if err != nil {
		return nil, failed(err)
	}
	return u, nil
}

func (p *Pipeline) profile(ctx context.Context, userID string) (*models.User, error) {
	res, err := p.gw.Select(ctx, *gateway.From(gateway.TableProfiles).Where(gateway.Eq("user_id", userID)))
	if err != nil {
		return nil, err
	}
	row, err := gateway.MaybeSingle(res.Rows)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	var u models.User
	if err := gateway.Decode(row, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func decodeSingle(rows []gateway.Row, dst any) error {
	row, err := gateway.Single(rows)
	if err != nil {
		return err
	}
	return gateway.Decode(row, dst)
}
