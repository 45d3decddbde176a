package content

import sitecontent "github.com/freightwave/go-sitecms/content"

// Local aliases for the public content contracts.
type (
	Section                  = sitecontent.Section
	CreateSectionRequest     = sitecontent.CreateSectionRequest
	UpdateSectionRequest     = sitecontent.UpdateSectionRequest
	BundleSectionInput       = sitecontent.BundleSectionInput
	SaveBundleRequest        = sitecontent.SaveBundleRequest
	BundleResult             = sitecontent.BundleResult
	Service                  = sitecontent.Service
	SectionNotFoundError     = sitecontent.SectionNotFoundError
	DuplicateSectionKeyError = sitecontent.DuplicateSectionKeyError
)
