package seo

import siteseo "github.com/freightwave/go-sitecms/seo"

// Local aliases for the public seo contracts.
type (
	Record              = siteseo.Record
	Defaults            = siteseo.Defaults
	Metadata            = siteseo.Metadata
	UpsertRecordRequest = siteseo.UpsertRecordRequest
	Service             = siteseo.Service
	RecordNotFoundError = siteseo.RecordNotFoundError
)
