package commands

import (
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"tableflip.dev/emojipick/pkg/app"
	"tableflip.dev/emojipick/pkg/bus"
	"tableflip.dev/emojipick/pkg/clip"
	"tableflip.dev/emojipick/pkg/config"
	"tableflip.dev/emojipick/pkg/emoji"
	"tableflip.dev/emojipick/pkg/paste"
	"tableflip.dev/emojipick/pkg/store"
)

const appName = "emojipick"

// loadService builds the shared service. With desktop set it also connects
// the session bus for notifications and the paste signal. The returned
// func releases what was opened.
func loadService(desktop bool) (*app.Service, func(), error) {
	cfg, err := config.Load(co.File)
	if err != nil {
		return nil, nil, err
	}
	settings := cfg.Settings()

	table := emoji.Load()
	if settings.EmojiTable != "" {
		if table, err = emoji.LoadFile(settings.EmojiTable); err != nil {
			return nil, nil, errors.Wrap(err, "load emoji table")
		}
	}

	p, err := store.Load(settings)
	if err != nil {
		return nil, nil, err
	}

	svc := app.New(table, p, cfg)
	if sink, err := clip.New(settings.ClipboardBackend); err != nil {
		jww.WARN.Printf("clipboard unavailable: %v", err)
	} else {
		svc.Clipboard = sink
	}

	cleanup := func() {}
	if !desktop {
		return svc, cleanup, nil
	}

	var signaler paste.Signaler
	if b, err := bus.Connect(appName); err != nil {
		jww.WARN.Printf("session bus unavailable: %v", err)
	} else {
		svc.Notifier = b
		signaler = b
		cleanup = func() {
			if err := b.Close(); err != nil {
				jww.DEBUG.Printf("close bus: %v", err)
			}
		}
	}

	typist, err := paste.NewTypist(settings.PasteBackend)
	if err != nil {
		jww.WARN.Printf("auto paste: %v", err)
	}
	svc.Paster = paste.NewNotifier(settings.AutoPaste, signaler, typist)

	return svc, cleanup, nil
}
