package selection

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	keyCellsSelected = "%d cells selected"
	keyCopied        = "Copied to clipboard! Ready to paste into a spreadsheet"
	keyCopyFailed    = "Error copying to clipboard"
)

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	b.Set(language.English, keyCellsSelected, plural.Selectf(1, "%d",
		"=1", "%d cell selected",
		"other", "%d cells selected"))
	b.SetString(language.English, keyCopied, keyCopied)
	b.SetString(language.English, keyCopyFailed, keyCopyFailed)

	b.Set(language.Spanish, keyCellsSelected, plural.Selectf(1, "%d",
		"=1", "%d celda seleccionada",
		"other", "%d celdas seleccionadas"))
	b.SetString(language.Spanish, keyCopied, "¡Copiado al portapapeles! Listo para pegar en Excel")
	b.SetString(language.Spanish, keyCopyFailed, "Error al copiar al portapapeles")

	return b
}

// Summarizer produces the localized status texts
type Summarizer struct {
	printer *message.Printer
}

// NewSummarizer creates a summarizer for a BCP 47 locale such as "en" or "es".
// Unknown locales fall back to English.
func NewSummarizer(locale string) *Summarizer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Summarizer{printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// Count returns the text for n selected cells; "" when nothing is selected
func (s *Summarizer) Count(n int) string {
	if n == 0 {
		return ""
	}
	return s.printer.Sprintf(keyCellsSelected, n)
}

// Copied is shown briefly after a successful copy
func (s *Summarizer) Copied() string {
	return s.printer.Sprintf(keyCopied)
}

// CopyFailed is shown after a failed clipboard write
func (s *Summarizer) CopyFailed() string {
	return s.printer.Sprintf(keyCopyFailed)
}
