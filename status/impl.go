package status

import (
	"fmt"
	"html"
	"io"
	"path/filepath"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/constants"
	"github.com/Cloud-Foundations/target-installer/lib/json"
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/Cloud-Foundations/tricorder/go/tricorder/units"
)

func (p *Presenter) registerMetrics(dirname string) error {
	dir, err := tricorder.RegisterDirectory(dirname)
	if err != nil {
		return err
	}
	err = dir.RegisterMetric("progress", p.Progress, units.None,
		"percentage of files installed")
	if err != nil {
		return err
	}
	err = dir.RegisterMetric("stage", p.Status, units.None,
		"current installation stage")
	if err != nil {
		return err
	}
	err = dir.RegisterMetric("locale", func() string {
		p.mutex.RLock()
		defer p.mutex.RUnlock()
		return p.locale
	}, units.None, "locale used for status messages")
	if err != nil {
		return err
	}
	return dir.RegisterMetric("start-time", &p.startTime, units.None,
		"time the installer started")
}

func (p *Presenter) setLocale(locale string) error {
	translations := make(map[string]string)
	filename := filepath.Join(p.translationsDir,
		locale+constants.TranslationSuffix)
	if err := json.ReadFromFile(filename, &translations); err != nil {
		return err
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.locale = locale
	p.translations = translations
	return nil
}

func (p *Presenter) setProgress(percent uint) {
	if percent > 100 {
		percent = 100
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.progress = percent
}

func (p *Presenter) setStatus(text string) {
	p.mutex.Lock()
	changed := text != p.stage
	p.stage = text
	p.mutex.Unlock()
	if changed {
		p.logger.Debugf(0, "status: %s\n", text)
	}
}

func (p *Presenter) translate(text string) string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if translated, ok := p.translations[text]; ok && translated != "" {
		return translated
	}
	return text
}

func (p *Presenter) writeHtml(writer io.Writer) {
	p.mutex.RLock()
	stage := p.stage
	progress := p.progress
	p.mutex.RUnlock()
	fmt.Fprintf(writer, "Status: <b>%s</b><br>\n", html.EscapeString(stage))
	fmt.Fprintf(writer,
		"Progress: <progress value=\"%d\" max=\"100\"></progress> %d%%<br>\n",
		progress, progress)
	fmt.Fprintf(writer, "Running for: %s<br>\n",
		time.Since(p.startTime).Truncate(time.Second))
}
