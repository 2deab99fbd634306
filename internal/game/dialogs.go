package game

import (
	"errors"
	"log/slog"

	"github.com/ncruces/zenity"
)

// Dialogs are the native dialogs behind the page's file chooser and
// newsletter form. They block the game loop while open.
type Dialogs struct {
	Logger *slog.Logger
	// OnError receives dialog failures other than a dismissal.
	OnError func(error)
}

func (d Dialogs) fail(what string, err error) {
	if d.Logger != nil {
		d.Logger.Warn("dialog failed", "dialog", what, "error", err)
	}
	if d.OnError != nil {
		d.OnError(err)
	}
}

// ChooseAmbience asks for a local audio file to loop.
func (d Dialogs) ChooseAmbience() (string, bool) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Ambience File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			d.fail("select file", err)
		}
		return "", false
	}
	return filename, true
}

// AskEmail asks for a newsletter address.
func (d Dialogs) AskEmail() (string, bool) {
	email, err := zenity.Entry("Email address", zenity.Title("Newsletter"))
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			d.fail("entry", err)
		}
		return "", false
	}
	return email, true
}

// ShowResult shows the newsletter outcome.
func (d Dialogs) ShowResult(msg string, ok bool) {
	show := zenity.Warning
	if ok {
		show = zenity.Info
	}
	if err := show(msg, zenity.Title("Newsletter")); err != nil && !errors.Is(err, zenity.ErrCanceled) {
		d.fail("message", err)
	}
}
