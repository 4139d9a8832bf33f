package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyEnterURL          = "enter_url"
	KeyPaste             = "paste"
	KeySearching         = "searching"
	KeyDownload          = "download"
	KeyBack              = "back"
	KeyCancel            = "cancel"
	KeySave              = "save"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyAppearance        = "appearance"
	KeyDownloadDirectory = "download_directory"
	KeyAutoReveal        = "auto_reveal"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyNotFoundTitle     = "not_found_title"
	KeyNoStreams         = "no_streams"
	KeyErrorTitle        = "error_title"
	KeyCurrentSpeed      = "current_speed"
	KeyAverageSpeed      = "average_speed"
	KeyETA               = "eta"
	KeyDownloadCompleted = "download_completed"
	KeyChooseQuality     = "choose_quality"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes keep the current one.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// System locale detection is not wired; English is the fallback
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YouTube Video Downloader",
		KeyEnterURL:          "Paste a YouTube link (https://youtube.com/watch?v=...)",
		KeyPaste:             "Paste",
		KeySearching:         "Searching...",
		KeyDownload:          "Download",
		KeyBack:              "Back",
		KeyCancel:            "Cancel",
		KeySave:              "Save",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyAppearance:        "Appearance",
		KeyDownloadDirectory: "Download Directory",
		KeyAutoReveal:        "Show file when download completes",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyNotFoundTitle:     "Not found",
		KeyNoStreams:         "Not found any streams for this video",
		KeyErrorTitle:        "Error",
		KeyCurrentSpeed:      "Current Speed: %.2fKB/s",
		KeyAverageSpeed:      "Avg Speed: %.2fKB/s",
		KeyETA:               "ETA: %s",
		KeyDownloadCompleted: "Download completed",
		KeyChooseQuality:     "Quality",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Загрузчик видео YouTube",
		KeyEnterURL:          "Вставьте ссылку YouTube (https://youtube.com/watch?v=...)",
		KeyPaste:             "Вставить",
		KeySearching:         "Поиск...",
		KeyDownload:          "Скачать",
		KeyBack:              "Назад",
		KeyCancel:            "Отмена",
		KeySave:              "Сохранить",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyAppearance:        "Оформление",
		KeyDownloadDirectory: "Папка загрузки",
		KeyAutoReveal:        "Показать файл после загрузки",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyNotFoundTitle:     "Не найдено",
		KeyNoStreams:         "Для этого видео не найдено ни одного потока",
		KeyErrorTitle:        "Ошибка",
		KeyCurrentSpeed:      "Текущая скорость: %.2fКБ/с",
		KeyAverageSpeed:      "Средняя скорость: %.2fКБ/с",
		KeyETA:               "Осталось: %s",
		KeyDownloadCompleted: "Загрузка завершена",
		KeyChooseQuality:     "Качество",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Baixador de Vídeos do YouTube",
		KeyEnterURL:          "Cole um link do YouTube (https://youtube.com/watch?v=...)",
		KeyPaste:             "Colar",
		KeySearching:         "Procurando...",
		KeyDownload:          "Baixar",
		KeyBack:              "Voltar",
		KeyCancel:            "Cancelar",
		KeySave:              "Salvar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyAppearance:        "Aparência",
		KeyDownloadDirectory: "Diretório de Download",
		KeyAutoReveal:        "Mostrar arquivo ao concluir",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyNotFoundTitle:     "Não encontrado",
		KeyNoStreams:         "Nenhum fluxo encontrado para este vídeo",
		KeyErrorTitle:        "Erro",
		KeyCurrentSpeed:      "Velocidade atual: %.2fKB/s",
		KeyAverageSpeed:      "Velocidade média: %.2fKB/s",
		KeyETA:               "Restante: %s",
		KeyDownloadCompleted: "Download concluído",
		KeyChooseQuality:     "Qualidade",
	}
}
