package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Recipient
	Name           string `json:"Name"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Sender branding
	AppName    string `json:"AppName"`
	AppURL     string `json:"AppURL"`
	SupportURL string `json:"SupportURL"`

	// Application
	InternshipTitle string `json:"InternshipTitle"`
	Company         string `json:"Company"`
	Status          string `json:"Status"`
	PreviousStatus  string `json:"PreviousStatus"`
	ApplicationsURL string `json:"ApplicationsURL"`

	Time   string    `json:"Time"`
	TimeAt time.Time `json:"TimeAt"`
}

// ToMap flattens d into the shape EmailJob.Data travels in.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// Template names. Each name has <name>.subject.tmpl, <name>.text.tmpl and
// <name>.html.tmpl in FS.
const (
	StatusChanged = "status_changed"
)

type executor interface {
	Execute(w io.Writer, data any) error
}

type set struct {
	subject, text, html executor
}

var (
	cacheMu sync.RWMutex
	cache   = map[string]*set{}
)

func parse(name string) (*set, error) {
	subject, err := texttpl.New(name+".subject.tmpl").Funcs(textFuncMap).ParseFS(FS, name+".subject.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse %s subject: %w", name, err)
	}
	text, err := texttpl.New(name+".text.tmpl").Funcs(textFuncMap).ParseFS(FS, name+".text.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse %s text: %w", name, err)
	}
	html, err := htmpl.New(name+".html.tmpl").Funcs(htmlFuncMap).ParseFS(FS, name+".html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse %s html: %w", name, err)
	}
	return &set{subject: subject, text: text, html: html}, nil
}

func lookup(name string) (*set, error) {
	cacheMu.RLock()
	s, ok := cache[name]
	cacheMu.RUnlock()
	if ok {
		return s, nil
	}
	s, err := parse(name)
	if err != nil {
		return nil, err
	}
	cacheMu.Lock()
	cache[name] = s
	cacheMu.Unlock()
	return s, nil
}

func execute(t executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render executes the subject, text and html templates of name. Parsed
// templates are cached after the first call.
func Render(name string, data any) (subject, text, html string, err error) {
	s, err := lookup(name)
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execute(s.subject, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s subject: %w", name, err)
	}
	if text, err = execute(s.text, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s text: %w", name, err)
	}
	if html, err = execute(s.html, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s html: %w", name, err)
	}
	return strings.TrimSpace(subject), text, html, nil
}
