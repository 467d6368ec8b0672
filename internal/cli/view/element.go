package view

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Display values understood by Element.
const (
	DisplayBlock = "block"
	DisplayNone  = "none"
)

const (
	LoadingLabel  = "Loading..."
	fallbackLabel = "Continue"
)

// Kind selects how an element is drawn.
type Kind int

const (
	KindText Kind = iota
	KindButton
	KindError
	KindTitle
)

// Element is a terminal stand-in for a DOM node: text, display, disabled flag and a data set.
type Element struct {
	mu       sync.Mutex
	Selector string
	Kind     Kind
	text     string
	display  string
	disabled bool
	dataset  map[string]string
}

func NewElement(selector string, kind Kind, text string) *Element {
	return &Element{Selector: selector, Kind: kind, text: text, display: DisplayBlock, dataset: map[string]string{}}
}

func (e *Element) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *Element) Display() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.display
}

func (e *Element) Visible() bool { return e.Display() != DisplayNone }

func (e *Element) Disabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disabled
}

// Data returns a dataset value.
func (e *Element) Data(key string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dataset[key]
}

// Alerter shows a blocking message when no container element is available.
type Alerter interface {
	Alert(message string)
}

// WriterAlerter prints alerts to W (stderr when nil).
type WriterAlerter struct {
	W io.Writer
}

func (a WriterAlerter) Alert(message string) {
	w := a.W
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, errorStyle.Render("! "+message))
}

// DefaultAlerter is used by ShowError when the container is nil.
var DefaultAlerter Alerter = WriterAlerter{}

// SetText заменяет текст элемента.
func SetText(el *Element, text string) {
	if el == nil {
		return
	}
	el.mu.Lock()
	el.text = text
	el.mu.Unlock()
}

func Show(el *Element) { setDisplay(el, DisplayBlock) }

func Hide(el *Element) { setDisplay(el, DisplayNone) }

func setDisplay(el *Element, d string) {
	if el == nil {
		return
	}
	el.mu.Lock()
	el.display = d
	el.mu.Unlock()
}

// SetLoading disables the button and swaps its label for LoadingLabel.
// The label seen on entering the loading state is restored when loading ends.
func SetLoading(btn *Element, loading bool) {
	if btn == nil {
		return
	}
	btn.mu.Lock()
	defer btn.mu.Unlock()
	if btn.dataset == nil {
		btn.dataset = map[string]string{}
	}
	if loading {
		if !btn.disabled || btn.text != LoadingLabel {
			btn.dataset["originalText"] = btn.text
		}
		btn.disabled = true
		btn.text = LoadingLabel
		return
	}
	btn.disabled = false
	if orig := btn.dataset["originalText"]; orig != "" {
		btn.text = orig
	} else {
		btn.text = fallbackLabel
	}
}

// ShowError puts message into container and shows it.
// Without a container the message goes to DefaultAlerter. Empty messages are ignored.
func ShowError(container *Element, message string) {
	if message == "" {
		return
	}
	if container == nil {
		DefaultAlerter.Alert(message)
		return
	}
	container.mu.Lock()
	container.text = message
	container.display = DisplayBlock
	container.mu.Unlock()
}

// ClearError empties and hides the container.
func ClearError(container *Element) {
	if container == nil {
		return
	}
	container.mu.Lock()
	container.text = ""
	container.display = DisplayNone
	container.mu.Unlock()
}
