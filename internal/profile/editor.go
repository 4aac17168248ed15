// Package profile implements in-place editing of the current user's profile
// fields and the separate password-change flow.
package profile

import (
	"context"
	"errors"

	"docemarce/internal/api"
	"docemarce/internal/models"
	"docemarce/internal/notify"
	"docemarce/internal/session"
)

// Field identifies an editable profile field.
type Field string

const (
	FieldName  Field = "name"
	FieldPhone Field = "phone"
	// FieldEmail exists only for display; the email is the account
	// identifier and never editable client-side.
	FieldEmail Field = "email"
)

// ErrPasswordMismatch is returned when the password-change form is incomplete
// or the two new entries differ. No request is sent in that case.
var ErrPasswordMismatch = errors.New("password fields invalid")

// ErrNotEditable is returned when writing a field that is not toggled
// editable.
var ErrNotEditable = errors.New("field not editable")

// Editor holds a working copy of the profile with per-field edit toggles.
// Each field flips independently between read-only and editable on
// focus/blur.
type Editor struct {
	client *api.Client
	notify notify.Notifier
	sess   *session.Session

	user    models.User
	editing map[Field]bool
}

// NewEditor builds an editor bound to the session identity.
func NewEditor(client *api.Client, n notify.Notifier, sess *session.Session) *Editor {
	return &Editor{
		client:  client,
		notify:  n,
		sess:    sess,
		editing: make(map[Field]bool),
	}
}

// Load fetches the profile for the session credentials into the working copy.
func (e *Editor) Load(ctx context.Context) error {
	users, err := e.client.FetchUsers(ctx, e.sess.Email(), e.sess.Password())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return session.ErrInvalidCredentials
	}
	e.user = users[0]
	return nil
}

// User returns the working copy.
func (e *Editor) User() models.User { return e.user }

// Focus toggles a field editable. The email field stays read-only.
func (e *Editor) Focus(f Field) bool {
	if f == FieldEmail {
		return false
	}
	e.editing[f] = true
	return true
}

// Blur returns a field to read-only.
func (e *Editor) Blur(f Field) { e.editing[f] = false }

// Editing reports whether a field currently accepts input.
func (e *Editor) Editing(f Field) bool { return e.editing[f] }

// Set writes a new value into an editable field.
func (e *Editor) Set(f Field, value string) error {
	if !e.editing[f] {
		return ErrNotEditable
	}
	switch f {
	case FieldName:
		e.user.Name = value
	case FieldPhone:
		e.user.Phone = value
	default:
		return ErrNotEditable
	}
	return nil
}

// SetPhoto replaces the profile photo URI. The photo has no edit toggle; the
// picker writes it directly.
func (e *Editor) SetPhoto(uri string) { e.user.Photo = uri }

// Save submits the whole working copy plus the session credential. The
// session itself keeps the pre-edit identity: it is not refreshed with the
// server's authoritative response.
func (e *Editor) Save(ctx context.Context) error {
	u := e.user
	u.Password = e.sess.Password()
	if err := e.client.UpdateUser(ctx, api.UpdateUserRequest{User: u}); err != nil {
		e.notify.Error("Não foi possível atualizar os dados.")
		return err
	}
	e.notify.Success("Dados atualizados com sucesso!")
	return nil
}

// ChangePassword validates locally, then submits the user object with the
// current credential and the new password. Empty fields or mismatched new
// entries are rejected before any request is sent.
func (e *Editor) ChangePassword(ctx context.Context, current, new1, new2 string) error {
	if current == "" || new1 == "" || new1 != new2 {
		e.notify.Error("Verifique os campos e tente novamente.")
		return ErrPasswordMismatch
	}
	u := e.user
	u.Password = current
	req := api.UpdateUserRequest{User: u, NewPassword: new1}
	if err := e.client.UpdateUser(ctx, req); err != nil {
		e.notify.Error("Não foi possível atualizar a senha.")
		return err
	}
	e.sess.SetPassword(new1)
	e.notify.Success("Senha alterada com sucesso!")
	return nil
}
