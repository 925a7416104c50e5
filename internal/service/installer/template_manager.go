package installer

import (
	"bytes"
	"context"
	"text/template"

	"github.com/oshokin/plastic-installer/internal/config"
	"github.com/oshokin/plastic-installer/internal/logger"
)

// TemplateManager renders the generated launcher script and desktop entry.
type TemplateManager interface {
	// GetLauncherScript renders the launcher wrapper script contents.
	GetLauncherScript(data *GeneratedFileData) (string, error)
	// GetDesktopEntry renders the desktop entry file contents.
	GetDesktopEntry(data *GeneratedFileData) (string, error)
}

// TemplateManagerImpl implements TemplateManager using text/template.
type TemplateManagerImpl struct {
	launcherScriptTemplate *template.Template
	desktopEntryTemplate   *template.Template
}

// NewTemplateManager parses the configured templates.
// A template that fails to parse is replaced by the built-in default.
func NewTemplateManager(ctx context.Context, cfg *config.Config) TemplateManager {
	return &TemplateManagerImpl{
		launcherScriptTemplate: parseTemplateOrDefault(ctx,
			"launcher-script", cfg.LauncherScriptTemplate, config.DefaultLauncherScriptTemplate),
		desktopEntryTemplate: parseTemplateOrDefault(ctx,
			"desktop-entry", cfg.DesktopEntryTemplate, config.DefaultDesktopEntryTemplate),
	}
}

// GetLauncherScript renders the launcher wrapper script contents.
func (tm *TemplateManagerImpl) GetLauncherScript(data *GeneratedFileData) (string, error) {
	return executeTemplate(tm.launcherScriptTemplate, data)
}

// GetDesktopEntry renders the desktop entry file contents.
func (tm *TemplateManagerImpl) GetDesktopEntry(data *GeneratedFileData) (string, error) {
	return executeTemplate(tm.desktopEntryTemplate, data)
}

func parseTemplateOrDefault(ctx context.Context, name, text, defaultText string) *template.Template {
	parsed, err := template.New(name).Parse(text)
	if err != nil {
		logger.Warnf(ctx, "Failed to parse %s template, using default: %v", name, err)

		return template.Must(template.New(name).Parse(defaultText))
	}

	return parsed
}

func executeTemplate(t *template.Template, data *GeneratedFileData) (string, error) {
	var buffer bytes.Buffer
	if err := t.Execute(&buffer, data); err != nil {
		return "", err
	}

	return buffer.String(), nil
}
