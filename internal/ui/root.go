package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/ytget/ytdl-desktop/internal/config"
	"github.com/ytget/ytdl-desktop/internal/model"
	"github.com/ytget/ytdl-desktop/internal/platform"
	"github.com/ytget/ytdl-desktop/internal/viewstate"
)

// Controller receives user actions. *viewstate.Machine implements it.
type Controller interface {
	URLChanged(text string)
	OptionSelected(label string)
	DirectoryChosen(dir string)
	Back()
	Cancel()
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	controller   Controller

	// Idle screen
	urlEntry *widget.Entry
	pasteBtn *widget.Button

	// Searching screen
	searchingLabel *widget.Label

	// Options screen
	optionsThumb  *canvas.Image
	optionsTitle  *widget.Label
	sizeLabel     *widget.Label
	qualitySelect *widget.Select
	downloadBtn   *widget.Button

	// Download screen
	downloadThumb    *canvas.Image
	downloadTitle    *widget.Label
	progressBar      *widget.ProgressBar
	percentLabel     *widget.Label
	transferredLabel *widget.Label
	speedLabel       *widget.Label
	averageLabel     *widget.Label
	etaLabel         *widget.Label

	screens map[model.ViewState]fyne.CanvasObject

	// Last applied view; only touched on the Fyne thread
	lastState model.ViewState
	meta      *model.VideoMetadata
	applying  bool
}

// NewRootUI creates and initializes the main UI. Call SetController before
// showing the window.
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, localization *Localization) *RootUI {
	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		lastState:    model.StateIdle,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// SetController connects user actions to the state machine
func (ui *RootUI) SetController(c Controller) {
	ui.controller = c
}

// Render implements viewstate.Renderer
func (ui *RootUI) Render(v viewstate.View) {
	fyne.Do(func() { ui.apply(v) })
}

// Notify implements viewstate.Renderer
func (ui *RootUI) Notify(n viewstate.Notification) {
	fyne.Do(func() { ui.showNotification(n) })
}

// OnDownloadComplete announces a finished file and reveals it when enabled
func (ui *RootUI) OnDownloadComplete(path string) error {
	fyne.Do(func() {
		ui.app.SendNotification(&fyne.Notification{
			Title:   ui.localization.GetText(KeyDownloadCompleted),
			Content: filepath.Base(path),
		})
	})

	if !ui.settings.GetAutoRevealOnComplete() {
		return nil
	}
	return platform.OpenFileInManager(path)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.screens = map[model.ViewState]fyne.CanvasObject{
		model.StateIdle:         ui.createIdleScreen(),
		model.StateSearching:    ui.createSearchingScreen(),
		model.StateOptionsShown: ui.createOptionsScreen(),
		model.StateDownloading:  ui.createDownloadScreen(),
	}

	stack := container.NewStack()
	for _, state := range []model.ViewState{model.StateIdle, model.StateSearching, model.StateOptionsShown, model.StateDownloading} {
		stack.Add(ui.screens[state])
	}
	ui.showScreen(model.StateIdle)

	ui.window.SetContent(container.NewPadded(stack))
	log.Debug("UI setup completed")
}

func (ui *RootUI) createIdleScreen() fyne.CanvasObject {
	text := ui.localization.GetText

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	ui.urlEntry.OnChanged = func(s string) {
		if ui.applying || ui.controller == nil {
			return
		}
		ui.controller.URLChanged(strings.TrimSpace(s))
	}

	ui.pasteBtn = widget.NewButton(IconPaste+" "+text(KeyPaste), ui.onPaste)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	row := container.NewBorder(nil, nil, nil, ui.pasteBtn, container.NewGridWrap(fyne.NewSize(EntryMinWidth, ui.urlEntry.MinSize().Height), ui.urlEntry))

	var header fyne.CanvasObject = layout.NewSpacer()
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		header = img
		ui.window.SetIcon(logo)
	} else {
		log.WithError(err).Debug("Logo not available")
	}

	return container.NewBorder(
		container.NewHBox(layout.NewSpacer(), settingsBtn),
		nil, nil, nil,
		container.NewCenter(container.NewVBox(header, row)),
	)
}

func (ui *RootUI) createSearchingScreen() fyne.CanvasObject {
	ui.searchingLabel = widget.NewLabel(ui.localization.GetText(KeySearching))
	ui.searchingLabel.Alignment = fyne.TextAlignCenter
	spinner := widget.NewProgressBarInfinite()

	return container.NewCenter(container.NewVBox(ui.searchingLabel, container.NewGridWrap(fyne.NewSize(EntryMinWidth, spinner.MinSize().Height), spinner)))
}

func newThumbnail() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))
	return img
}

func newBackButton(onTapped func()) *widget.Button {
	btn := widget.NewButton(IconBack, onTapped)
	btn.Importance = widget.LowImportance
	return btn
}

func (ui *RootUI) createOptionsScreen() fyne.CanvasObject {
	ui.optionsThumb = newThumbnail()
	ui.optionsTitle = widget.NewLabel("")
	ui.optionsTitle.Alignment = fyne.TextAlignCenter
	ui.optionsTitle.TextStyle = fyne.TextStyle{Bold: true}
	ui.optionsTitle.Wrapping = fyne.TextWrapWord

	ui.sizeLabel = widget.NewLabel("")
	ui.sizeLabel.Alignment = fyne.TextAlignCenter

	ui.qualitySelect = widget.NewSelect(nil, func(label string) {
		if ui.applying || ui.controller == nil {
			return
		}
		ui.controller.OptionSelected(label)
	})
	ui.qualitySelect.PlaceHolder = ui.localization.GetText(KeyChooseQuality)

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	back := newBackButton(func() {
		if ui.controller != nil {
			ui.controller.Back()
		}
	})

	body := container.NewVBox(
		container.NewCenter(ui.optionsThumb),
		ui.optionsTitle,
		ui.sizeLabel,
		container.NewCenter(ui.qualitySelect),
		container.NewCenter(ui.downloadBtn),
	)
	return container.NewBorder(container.NewHBox(back), nil, nil, nil, body)
}

func (ui *RootUI) createDownloadScreen() fyne.CanvasObject {
	ui.downloadThumb = newThumbnail()
	ui.downloadTitle = widget.NewLabel("")
	ui.downloadTitle.Alignment = fyne.TextAlignCenter
	ui.downloadTitle.TextStyle = fyne.TextStyle{Bold: true}
	ui.downloadTitle.Wrapping = fyne.TextWrapWord

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string { return "" }

	newCentered := func() *widget.Label {
		l := widget.NewLabel("")
		l.Alignment = fyne.TextAlignCenter
		return l
	}
	ui.percentLabel = newCentered()
	ui.transferredLabel = newCentered()
	ui.speedLabel = newCentered()
	ui.averageLabel = newCentered()
	ui.etaLabel = newCentered()

	cancel := newBackButton(func() {
		if ui.controller != nil {
			ui.controller.Cancel()
		}
	})

	body := container.NewVBox(
		container.NewCenter(ui.downloadThumb),
		ui.downloadTitle,
		ui.progressBar,
		ui.percentLabel,
		ui.transferredLabel,
		ui.speedLabel,
		ui.averageLabel,
		ui.etaLabel,
	)
	return container.NewBorder(container.NewHBox(cancel), nil, nil, nil, body)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all static UI texts with current language
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText

	ui.window.SetTitle(text(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	ui.pasteBtn.SetText(IconPaste + " " + text(KeyPaste))
	ui.searchingLabel.SetText(text(KeySearching))
	ui.downloadBtn.SetText(text(KeyDownload))
	ui.qualitySelect.PlaceHolder = text(KeyChooseQuality)
	ui.qualitySelect.Refresh()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

func (ui *RootUI) onSettingsSaved() {
	ui.app.Settings().SetTheme(NewAppTheme(ui.settings.GetAppearance()))
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()
}

// onPaste fills the URL field from the clipboard. Empty clipboard is a no-op.
func (ui *RootUI) onPaste() {
	content := strings.TrimSpace(ui.app.Clipboard().Content())
	if content == "" {
		return
	}

	ui.applying = true
	ui.urlEntry.SetText(content)
	ui.applying = false

	if ui.controller != nil {
		ui.controller.URLChanged(content)
	}
}

// onDownloadClick asks for the target directory. A cancelled dialog is
// reported as an empty directory.
func (ui *RootUI) onDownloadClick() {
	folder := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			log.WithError(err).Warn("Folder dialog failed")
		}
		if err != nil || uri == nil {
			ui.directoryChosen("")
			return
		}
		ui.settings.SetDownloadDirectory(uri.Path())
		ui.directoryChosen(uri.Path())
	}, ui.window)

	if dir := ui.settings.GetDownloadDirectory(); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			folder.SetLocation(lister)
		}
	}
	folder.Show()
}

func (ui *RootUI) directoryChosen(dir string) {
	if ui.controller != nil {
		ui.controller.DirectoryChosen(dir)
	}
}

func (ui *RootUI) showScreen(state model.ViewState) {
	for s, screen := range ui.screens {
		if s == state {
			screen.Show()
		} else {
			screen.Hide()
		}
	}
}

// apply draws a view. It must run on the Fyne thread.
func (ui *RootUI) apply(v viewstate.View) {
	ui.applying = true
	defer func() { ui.applying = false }()

	if v.State == model.StateIdle && ui.lastState != model.StateIdle {
		ui.urlEntry.SetText("")
	}
	if v.State != ui.lastState {
		ui.showScreen(v.State)
	}

	if v.Metadata != ui.meta {
		ui.meta = v.Metadata
		title := v.Metadata.DisplayTitle()
		ui.optionsTitle.SetText(title)
		ui.downloadTitle.SetText(title)
		ui.qualitySelect.Options = v.Metadata.Labels()
		ui.qualitySelect.ClearSelected()
	}

	if ui.optionsThumb.Image != v.Thumbnail {
		ui.optionsThumb.Image = v.Thumbnail
		ui.downloadThumb.Image = v.Thumbnail
		ui.optionsThumb.Refresh()
		ui.downloadThumb.Refresh()
	}

	if v.Selected != "" && ui.qualitySelect.Selected != v.Selected {
		ui.qualitySelect.SetSelected(v.Selected)
	}
	if opt, ok := v.SelectedOption(); ok {
		ui.sizeLabel.SetText(opt.SizeLabel())
	} else {
		ui.sizeLabel.SetText("")
	}

	if v.State == model.StateDownloading {
		ui.applyProgress(v)
	}

	ui.lastState = v.State
}

func (ui *RootUI) applyProgress(v viewstate.View) {
	p := v.Progress
	ui.progressBar.SetValue(p.Fraction)
	ui.percentLabel.SetText(p.Percent())
	ui.transferredLabel.SetText(p.Transferred())
	ui.speedLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyCurrentSpeed), p.SpeedKBps))
	ui.averageLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyAverageSpeed), p.AverageKBps))
	ui.etaLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyETA), p.ETA()))
}

// showNotification surfaces a machine notification as a dialog
func (ui *RootUI) showNotification(n viewstate.Notification) {
	switch {
	case errors.Is(n.Err, model.ErrNoStreamsFound):
		dialog.ShowInformation(ui.localization.GetText(KeyNotFoundTitle), ui.localization.GetText(KeyNoStreams), ui.window)
	case n.Kind == viewstate.NotificationWarning:
		dialog.ShowInformation(ui.localization.GetText(KeyNotFoundTitle), n.Err.Error(), ui.window)
	default:
		dialog.ShowError(n.Err, ui.window)
	}
}
