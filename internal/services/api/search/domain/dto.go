// Package domain holds DTOs for search http and service contracts
package domain

import (
	"time"

	"inputdash/internal/core/facets"
	"inputdash/internal/core/window"
)

// SearchInput is the dashboard search form. Every field is optional; dates are YYYY-MM-DD.
type SearchInput struct {
	Q            string `json:"q,omitempty" validate:"max=200" example:"crash"`
	Product      string `json:"product,omitempty" validate:"omitempty,oneof=firefox mobile" example:"firefox"`
	Version      string `json:"version,omitempty" validate:"max=32" example:"4.0"`
	Sentiment    string `json:"sentiment,omitempty" validate:"omitempty,oneof=happy sad ideas" example:"sad"`
	Locale       string `json:"locale,omitempty" validate:"max=16" example:"en-US"`
	Platform     string `json:"platform,omitempty" validate:"max=32" example:"win7"`
	Manufacturer string `json:"manufacturer,omitempty" validate:"max=64" example:"Samsung"`
	Device       string `json:"device,omitempty" validate:"max=64" example:"Nexus S"`
	DateStart    string `json:"date_start,omitempty" validate:"omitempty,date" example:"2011-05-01"`
	DateEnd      string `json:"date_end,omitempty" validate:"omitempty,date" example:"2011-05-31"`

	// Page below 1 means the first page
	Page int `json:"page,omitempty" example:"1"`
}

// Opinion is one feedback record
type Opinion struct {
	ID           int64     `json:"id" example:"1024"`
	Type         int       `json:"type" example:"2"`
	Sentiment    string    `json:"sentiment" example:"issue"`
	Product      int       `json:"product" example:"1"`
	Version      string    `json:"version" example:"4.0"`
	Platform     string    `json:"platform" example:"win7"`
	Locale       string    `json:"locale" example:"en-US"`
	Manufacturer string    `json:"manufacturer,omitempty" example:"Samsung"`
	Device       string    `json:"device,omitempty" example:"Nexus S"`
	Description  string    `json:"description" example:"Crashes when I open a new tab"`
	URL          string    `json:"url,omitempty" example:"https://example.com/"`
	Created      time.Time `json:"created" example:"2011-05-10T14:03:00Z"`
}

// Sentiment summarizes the type facet
type Sentiment struct {
	Happy     int64  `json:"happy" example:"120"`
	Sad       int64  `json:"sad" example:"80"`
	Ideas     int64  `json:"ideas" example:"12"`
	Total     int64  `json:"total" example:"212"`
	Sentiment string `json:"sentiment" example:"happy"`
}

// DemoRow is one labelled count of a demographic facet; Label is null for values outside the known lists
type DemoRow struct {
	Label *string `json:"label" example:"win7"`
	Name  string  `json:"name,omitempty" example:"Windows 7"`
	Count int64   `json:"count" example:"40"`
}

// Demographics are the sidebar facets; a facet is null when the backend returned nothing for it
type Demographics struct {
	Locale       []DemoRow `json:"locale"`
	Platform     []DemoRow `json:"platform"`
	Manufacturer []DemoRow `json:"manufacturer"`
	Device       []DemoRow `json:"device"`
}

// ChartSeries is one line of the daily sentiment chart
type ChartSeries struct {
	Name string         `json:"name" example:"Praise"`
	Data []facets.Point `json:"data"`
}

// Chart is the daily sentiment chart
type Chart struct {
	Series []ChartSeries `json:"series"`
}

// Dashboard is the full dashboard payload
type Dashboard struct {
	// IsDashboard is true when the request carried no search criteria
	IsDashboard  bool                 `json:"dashboard" example:"false"`
	Query        string               `json:"q" example:"crash"`
	Product      string               `json:"product" example:"firefox"`
	Version      string               `json:"version" example:"4.0"`
	OpinionCount int                  `json:"opinion_count" example:"212"`
	Page         window.Page[Opinion] `json:"page"`
	Sentiment    Sentiment            `json:"sent"`
	Demo         Demographics         `json:"demo"`
	Period       string               `json:"period" example:"7d"`
	Days         int                  `json:"days" example:"7"`
	Chart        *Chart               `json:"chart,omitempty"`
	Cached       bool                 `json:"cached" example:"false"`
}

// OpinionPage is the feed payload: one page of opinions and nothing else
type OpinionPage struct {
	Query        string               `json:"q" example:"crash"`
	OpinionCount int                  `json:"opinion_count" example:"212"`
	Page         window.Page[Opinion] `json:"page"`
}
