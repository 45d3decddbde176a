package headers

import siteheaders "github.com/freightwave/go-sitecms/headers"

// Local aliases for the public header contracts.
type (
	NavLink             = siteheaders.NavLink
	Content             = siteheaders.Content
	Config              = siteheaders.Config
	CreateConfigRequest = siteheaders.CreateConfigRequest
	UpdateConfigRequest = siteheaders.UpdateConfigRequest
	Service             = siteheaders.Service
	HeaderNotFoundError = siteheaders.HeaderNotFoundError
)
