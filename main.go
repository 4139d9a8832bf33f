package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	log "github.com/sirupsen/logrus"

	"github.com/ytget/ytdl-desktop/internal/config"
	"github.com/ytget/ytdl-desktop/internal/download"
	"github.com/ytget/ytdl-desktop/internal/metadata"
	"github.com/ytget/ytdl-desktop/internal/thumbnail"
	"github.com/ytget/ytdl-desktop/internal/ui"
	"github.com/ytget/ytdl-desktop/internal/viewstate"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytdl-desktop"
	AppName = "YTDL"

	// DialTimeout bounds connection setup for media requests
	DialTimeout = 15 * time.Second
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}
	env.ConfigureLogging(os.Stderr)
	log.Infof("%s v%s starting", AppName, version)

	myApp := app.NewWithID(AppID)
	settings := config.NewSettings(myApp)
	myApp.Settings().SetTheme(ui.NewAppTheme(settings.GetAppearance()))

	localization := ui.NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))
	rootUI := ui.NewRootUI(myWindow, myApp, settings, localization)

	// Media streams run for minutes, so only connection setup and response
	// headers are bounded here. Thumbnails get a whole-request timeout.
	mediaClient := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: DialTimeout}).DialContext,
			TLSHandshakeTimeout:   DialTimeout,
			ResponseHeaderTimeout: env.HTTPTimeout,
		},
	}
	thumbClient := &http.Client{Timeout: env.HTTPTimeout}

	provider := metadata.NewYouTube(mediaClient, metadata.NewYTDLPPlaylists())
	machine := viewstate.New(
		metadata.NewFetcher(provider),
		thumbnail.NewRenderer(thumbClient),
		download.NewWorker(provider, env.ChunkSize),
		rootUI,
		viewstate.Options{Reveal: rootUI.OnDownloadComplete},
	)
	rootUI.SetController(machine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := machine.Run(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("View state machine stopped")
		}
	}()

	myWindow.ShowAndRun()
}
