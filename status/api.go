// Package status holds what the installer shows to the outside world: the
// current stage text and the progress percentage. The stage texts may be
// translated once the locale is known.
package status

import (
	"io"
	"sync"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

type Presenter struct {
	logger          log.DebugLogger
	startTime       time.Time
	translationsDir string
	mutex           sync.RWMutex // Protect everything below.
	locale          string
	progress        uint
	stage           string
	translations    map[string]string
}

// New creates a Presenter which loads translations from translationsDir.
func New(translationsDir string, logger log.DebugLogger) *Presenter {
	return &Presenter{
		logger:          logger,
		startTime:       time.Now(),
		translationsDir: translationsDir,
	}
}

// Progress returns the current progress percentage.
func (p *Presenter) Progress() uint {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.progress
}

// RegisterMetrics registers the progress, stage and start time as tricorder
// metrics under dirname.
func (p *Presenter) RegisterMetrics(dirname string) error {
	return p.registerMetrics(dirname)
}

// SetLocale loads the translations for locale. On error the previous
// translations (if any) remain in use.
func (p *Presenter) SetLocale(locale string) error {
	return p.setLocale(locale)
}

// SetProgress sets the progress percentage. Values above 100 are clamped.
func (p *Presenter) SetProgress(percent uint) {
	p.setProgress(percent)
}

// SetStatus sets the stage text. The text should already be translated.
func (p *Presenter) SetStatus(text string) {
	p.setStatus(text)
}

// Status returns the current stage text.
func (p *Presenter) Status() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.stage
}

// Translate returns the translation of text for the current locale, or text
// if there is no translation.
func (p *Presenter) Translate(text string) string {
	return p.translate(text)
}

func (p *Presenter) WriteHtml(writer io.Writer) {
	p.writeHtml(writer)
}
