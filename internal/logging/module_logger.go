package logging

import (
	"context"
	"strings"

	"github.com/freightwave/go-sitecms/pkg/interfaces"
)

const (
	rootModule        = "sitecms"
	pagesModule       = "sitecms.pages"
	contentModule     = "sitecms.content"
	seoModule         = "sitecms.seo"
	headersModule     = "sitecms.headers"
	locationsModule   = "sitecms.locations"
	routerModule      = "sitecms.router"
	renderModule      = "sitecms.render"
	staticPagesModule = "sitecms.static"
	identityModule    = "sitecms.identity"
	httpModule        = "sitecms.http"
)

const (
	fieldPagePath   = "page_path"
	fieldSectionKey = "section_key"
)

// ModuleLogger returns a module-scoped logger, falling back to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries filter predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger namespace reserved for the page service.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// ContentLogger returns the logger namespace reserved for content sections.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// SEOLogger returns the logger namespace reserved for SEO resolution.
func SEOLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, seoModule)
}

// HeadersLogger returns the logger namespace reserved for header configs.
func HeadersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, headersModule)
}

// LocationsLogger returns the logger namespace reserved for office locations.
func LocationsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, locationsModule)
}

// RouterLogger returns the logger namespace reserved for route resolution.
func RouterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, routerModule)
}

// RenderLogger returns the logger namespace reserved for page rendering.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// StaticPagesLogger returns the logger namespace for file-backed pages.
func StaticPagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, staticPagesModule)
}

// IdentityLogger returns the logger namespace reserved for admin sessions.
func IdentityLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, identityModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP layer.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithPageContext enriches a logger with page path and section key fields.
// Empty values are ignored.
func WithPageContext(logger interfaces.Logger, path, sectionKey string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldPagePath] = trimmed
	}
	if trimmed := strings.TrimSpace(sectionKey); trimmed != "" {
		fields[fieldSectionKey] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry. It satisfies the Logger
// contract so services operate safely when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
