package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Template helper functions
var funcMap = template.FuncMap{
	"PassFail": PassFail,
}

// PassFail renders a self-test verdict.
func PassFail(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

// templates holds all parsed templates.
// The key is the template name relative to the templates directory
// e.g., "register.html" or "errors/error.html"
var (
	templates     map[string]*template.Template
	templatesOnce sync.Once
	templatesErr  error
)

// LoadTemplates parses all HTML templates from the given directory and its
// first level of subdirectories. Files named layout.html define the shared
// layout, files starting with "_" are partials available to every page.
// It should be called once at application startup; later calls return the
// result of the first one.
func LoadTemplates(dir string) error {
	templatesOnce.Do(func() {
		templates, templatesErr = parseTemplates(dir)
	})
	return templatesErr
}

func parseTemplates(dir string) (map[string]*template.Template, error) {
	layoutFile := filepath.Join(dir, "layout.html")
	if _, err := os.Stat(layoutFile); err != nil {
		return nil, fmt.Errorf("layout.html not found in %s: %w", dir, err)
	}

	var allFiles []string
	for _, pattern := range []string{"*.html", "*/*.html"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("error globbing templates: %w", err)
		}
		allFiles = append(allFiles, matches...)
	}

	var pageFiles, partialFiles []string
	for _, file := range allFiles {
		switch {
		case file == layoutFile:
		case strings.HasPrefix(filepath.Base(file), "_"):
			partialFiles = append(partialFiles, file)
		default:
			pageFiles = append(pageFiles, file)
		}
	}

	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", dir)
	}

	parsed := make(map[string]*template.Template, len(pageFiles))
	for _, pageFile := range pageFiles {
		rel, err := filepath.Rel(dir, pageFile)
		if err != nil {
			return nil, err
		}
		name := filepath.ToSlash(rel)

		// The page file comes first so the set is named after it and
		// Execute renders the page, which in turn calls {{template "layout" .}}.
		filesToParse := append([]string{pageFile, layoutFile}, partialFiles...)
		tmpl, err := template.New(filepath.Base(pageFile)).Funcs(funcMap).ParseFiles(filesToParse...)
		if err != nil {
			return nil, fmt.Errorf("error parsing page template %s: %w", name, err)
		}
		parsed[name] = tmpl
	}

	return parsed, nil
}

// RenderErrorPage renders a standardized error page using the error.html template.
func RenderErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, title string, message string) {
	data := map[string]interface{}{
		"Title":       fmt.Sprintf("Error %d - %s", statusCode, title),
		"StatusCode":  statusCode,
		"StatusText":  http.StatusText(statusCode),
		"ErrorTitle":  title,
		"Message":     message,
		"CurrentYear": time.Now().Year(),
	}
	renderTemplate(w, statusCode, "error.html", data)
}

// RenderTemplate executes the named template with a 200 status.
func RenderTemplate(w http.ResponseWriter, name string, data interface{}) {
	renderTemplate(w, http.StatusOK, name, data)
}

// renderTemplate executes the template into a buffer first so a failing
// template never leaves a half-written page behind.
func renderTemplate(w http.ResponseWriter, statusCode int, name string, data interface{}) {
	tmpl, ok := templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template not found: %s. Available: %v", name, getTemplateKeys()), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		http.Error(w, fmt.Sprintf("Error executing template %s: %s", name, err.Error()), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
}

func getTemplateKeys() []string {
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
