package locations

import sitelocations "github.com/freightwave/go-sitecms/locations"

// Local aliases for the public location contracts.
type (
	Location              = sitelocations.Location
	CreateLocationRequest = sitelocations.CreateLocationRequest
	UpdateLocationRequest = sitelocations.UpdateLocationRequest
	Service               = sitelocations.Service
	LocationNotFoundError = sitelocations.LocationNotFoundError
)
