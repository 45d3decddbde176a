package sitecms

import "github.com/freightwave/go-sitecms/internal/runtimeconfig"

var (
	ErrDatabaseDriverUnknown   = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired     = runtimeconfig.ErrDatabaseDSNRequired
	ErrSessionSecretRequired   = runtimeconfig.ErrSessionSecretRequired
	ErrAdminCredentialRequired = runtimeconfig.ErrAdminCredentialRequired
	ErrSessionTTLInvalid       = runtimeconfig.ErrSessionTTLInvalid
	ErrSiteBaseURLRequired     = runtimeconfig.ErrSiteBaseURLRequired
	ErrStaticPagesDirRequired  = runtimeconfig.ErrStaticPagesDirRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config            = runtimeconfig.Config
	SiteConfig        = runtimeconfig.SiteConfig
	ServerConfig      = runtimeconfig.ServerConfig
	DatabaseConfig    = runtimeconfig.DatabaseConfig
	AuthConfig        = runtimeconfig.AuthConfig
	ContentConfig     = runtimeconfig.ContentConfig
	StaticPagesConfig = runtimeconfig.StaticPagesConfig
	CacheConfig       = runtimeconfig.CacheConfig
	RoutesConfig      = runtimeconfig.RoutesConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
	Features          = runtimeconfig.Features
)

// DefaultConfig returns opinionated defaults for a single-site
// deployment.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
