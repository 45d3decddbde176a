package pages

import sitepages "github.com/freightwave/go-sitecms/pages"

// Local aliases for the public page contracts.
type (
	Page                 = sitepages.Page
	CreatePageRequest    = sitepages.CreatePageRequest
	UpdatePageRequest    = sitepages.UpdatePageRequest
	DeletePageRequest    = sitepages.DeletePageRequest
	DuplicatePageRequest = sitepages.DuplicatePageRequest
	Service              = sitepages.Service
	PageNotFoundError    = sitepages.PageNotFoundError
	ComponentKeyError    = sitepages.ComponentKeyError
)
